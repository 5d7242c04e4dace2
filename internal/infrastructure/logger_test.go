package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellmech/internal/config"
)

func lastEntry(t *testing.T, content []byte) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInitializeLogger(t *testing.T) {
	prev := slog.Default()
	ResetLoggerForTesting()
	defer func() {
		ResetLoggerForTesting()
		slog.SetDefault(prev)
	}()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	logger.Info("merge complete", "samples", 3)
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entry := lastEntry(t, content)
	assert.Equal(t, "merge complete", entry["msg"])
	assert.Equal(t, float64(3), entry["samples"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")

	ctx := WithTraceID(context.Background(), "run-123")
	logger.InfoContext(ctx, "stage done")

	entry := lastEntry(t, buf.Bytes())
	assert.Equal(t, "run-123", entry["trace_id"])

	buf.Reset()
	logger.InfoContext(context.Background(), "no trace")
	_, ok := lastEntry(t, buf.Bytes())["trace_id"]
	assert.False(t, ok)
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	require.NotEmpty(t, id)
	assert.Len(t, id, 36)

	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing id is kept")
}

func TestRunContextInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithWell(ctx, "EF-7H")
	ctx = WithRunID(ctx, "run-42")
	assert.Equal(t, "run-42", RunIDFromContext(ctx))
	assert.Equal(t, "EF-7H", WellFromContext(ctx))

	logger.InfoContext(ctx, "pipeline completed", "curves", 16)
	entry := lastEntry(t, buf.Bytes())
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Equal(t, "run-42", entry["run_id"])
	assert.Equal(t, "EF-7H", entry["well"])

	buf.Reset()
	WithComponent(logger, "exporter").InfoContext(WithWell(context.Background(), ""), "written")
	entry = lastEntry(t, buf.Bytes())
	assert.Equal(t, "exporter", entry["component"])
	for _, key := range []string{"trace_id", "run_id", "well"} {
		_, ok := entry[key]
		assert.False(t, ok, key)
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		debugOn bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"bogus", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))

			var buf bytes.Buffer
			NewLogger(&buf, tt.level).Debug("curve resolved")
			assert.Equal(t, tt.debugOn, buf.Len() > 0)
		})
	}
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")

	WithError(WithComponent(logger, "rockprops"), errors.New("boom")).Info("failed")
	entry := lastEntry(t, buf.Bytes())
	assert.Equal(t, "rockprops", entry["component"])
	assert.Equal(t, "boom", entry["error"])

	assert.Same(t, logger, WithError(logger, nil))
}
