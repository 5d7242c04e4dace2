package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// runKey identifies a value attached to the context of one wellmech run.
type runKey string

const (
	// TraceIDContextKey carries the trace id shared by every log line of a run
	TraceIDContextKey runKey = "trace_id"
	// RunIDContextKey carries the id of one property pipeline run
	RunIDContextKey runKey = "run_id"
	// WellContextKey carries the name of the well being processed
	WellContextKey runKey = "well"
)

// runAttrs lists the context values copied onto every log record, in output order.
var runAttrs = []runKey{TraceIDContextKey, RunIDContextKey, WellContextKey}

// GenerateTraceID returns a random UUID v4 string.
func GenerateTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID returns ctx unchanged when it already carries a trace id,
// or a child context with a fresh one.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, GenerateTraceID())
}

// WithTraceID attaches a trace id to ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID returns the trace id of ctx. Without an explicit id it falls
// back to the id of the active otel span, or "".
func GetTraceID(ctx context.Context) string {
	if traceID := runValue(ctx, TraceIDContextKey); traceID != "" {
		return traceID
	}
	return TraceIDFromContext(ctx)
}

// WithRunID attaches a pipeline run id to ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDContextKey, runID)
}

// RunIDFromContext returns the pipeline run id of ctx, or "".
func RunIDFromContext(ctx context.Context) string {
	return runValue(ctx, RunIDContextKey)
}

// WithWell attaches the well name to ctx. An empty name leaves ctx as is.
func WithWell(ctx context.Context, well string) context.Context {
	if well == "" {
		return ctx
	}
	return context.WithValue(ctx, WellContextKey, well)
}

// WellFromContext returns the well name of ctx, or "".
func WellFromContext(ctx context.Context) string {
	return runValue(ctx, WellContextKey)
}

func runValue(ctx context.Context, key runKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// WithComponent tags logger with the component emitting the records.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithError tags logger with err. A nil err returns logger itself.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}
