package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredLogger(t *testing.T) {
	t.Run("creates JSON logger with proper configuration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		logger.Info("test message",
			slog.String("component", "test"),
			slog.Int("count", 42))

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"test message"`)
		assert.Contains(t, output, `"component":"test"`)
		assert.Contains(t, output, `"count":42`)
		assert.Contains(t, output, `"time":`)
	})

	t.Run("respects log level configuration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warning message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warning message")
	})
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogError(logger, "graph build failed", errors.New("unknown interchange"),
		slog.String("city", "Bengaluru"))

	output := buf.String()
	assert.Contains(t, output, `"msg":"graph build failed"`)
	assert.Contains(t, output, `"error":"unknown interchange"`)
	assert.Contains(t, output, `"city":"Bengaluru"`)

	// Nil logger must not panic.
	LogError(nil, "ignored", errors.New("ignored"))
}

func TestLogHTTPRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogHTTPRequest(logger, "GET", "/api/marga/route-options.json", 200, 12.5)

	output := buf.String()
	assert.Contains(t, output, `"msg":"http_request"`)
	assert.Contains(t, output, `"method":"GET"`)
	assert.Contains(t, output, `"status":200`)
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	ctx := WithLogger(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()), "falls back to the default logger")
}
