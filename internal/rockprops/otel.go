package rockprops

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wellmech/internal/infrastructure"
)

const (
	TracerName = "wellmech.rockprops"
)

// pipelineTracer wraps the span and metric bookkeeping for runs and stages
type pipelineTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

func newPipelineTracer() *pipelineTracer {
	return &pipelineTracer{tracer: otel.Tracer(TracerName)}
}

// traceRun creates a span for a whole pipeline run
func (pt *pipelineTracer) traceRun(ctx context.Context, runID string, samples int) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "rockprops.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("run.samples", samples),
		),
	)

	if pt.metrics != nil {
		pt.metrics.ActiveRuns.Add(ctx, 1)
	}
	return ctx, span
}

// traceStage creates a child span for one stage
func (pt *pipelineTracer) traceStage(ctx context.Context, runID, stage string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, fmt.Sprintf("rockprops.stage.%s", stage),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("stage.name", stage),
		),
	)
}

func (pt *pipelineTracer) recordStage(ctx context.Context, span trace.Span, stage string, duration time.Duration, samples int, err error) {
	span.SetAttributes(
		attribute.Float64("stage.duration_seconds", duration.Seconds()),
		attribute.Int("stage.samples", samples),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "stage completed")
	}
	infrastructure.RecordStageMetrics(ctx, pt.metrics, stage, duration, samples, err)
}

func (pt *pipelineTracer) recordRun(ctx context.Context, span trace.Span, duration time.Duration, warnings int, err error) {
	span.SetAttributes(
		attribute.Float64("run.duration_seconds", duration.Seconds()),
		attribute.Int("run.warnings", warnings),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "run completed")
	}

	if pt.metrics != nil {
		pt.metrics.ActiveRuns.Add(ctx, -1)
	}
	infrastructure.RecordRunMetrics(ctx, pt.metrics, duration, err)
}
