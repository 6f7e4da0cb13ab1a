package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"catalog-import/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := logger.Default()
	logger.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { logger.SetLogger(previous) })
	return &buf
}

func TestLogger_Info(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.Info("batch finished",
		slog.String("stage", "enrichment"),
		slog.Int("processed", 42),
	)

	output := buf.String()
	assert.Contains(t, output, "batch finished")
	assert.Contains(t, output, "enrichment")
	assert.Contains(t, output, "42")
}

func TestLogger_Error(t *testing.T) {
	buf := captureLogger(t, slog.LevelError)

	logger.Info("hidden")
	logger.Error("model call failed",
		slog.String("error", "quota exceeded"),
	)

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "model call failed")
	assert.Contains(t, output, "quota exceeded")
}

func TestLogger_WithStage(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.WithStage("job-456", "image_match").Info("matching images")

	output := buf.String()
	assert.Contains(t, output, `"job_id":"job-456"`)
	assert.Contains(t, output, `"stage":"image_match"`)
}

func TestLogger_WithRequestIDAndJobID(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.WithRequestID("req-123").Info("processing request")
	logger.WithJobID("job-789").Info("processing job")

	output := buf.String()
	assert.Contains(t, output, "req-123")
	assert.Contains(t, output, "job-789")
}

func TestLogger_InfoContext(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.InfoContext(context.Background(), "context message", slog.String("key", "value"))

	assert.Contains(t, buf.String(), "context message")
}

func TestLogger_WithFields(t *testing.T) {
	buf := captureLogger(t, slog.LevelInfo)

	logger.WithFields(
		slog.String("draft_id", "d-1"),
		slog.Int("row_index", 3),
	).Info("draft updated")

	output := buf.String()
	assert.Contains(t, output, "d-1")
	assert.Contains(t, output, "row_index")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestLogger_Default(t *testing.T) {
	require.NotNil(t, logger.Default())
}
