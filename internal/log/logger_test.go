package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestGetOrGenerateCorrelationID_PrefersContextValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "req-123")

	assert.Equal(t, "req-123", GetOrGenerateCorrelationID(ctx))
	assert.NotEmpty(t, GetOrGenerateCorrelationID(context.Background()))
}

func TestGetLoggerInstanceFromContext_UsesStoredLogger(t *testing.T) {
	stored := NewLoggerWithJSONOutput()
	ctx := WithLogger(context.Background(), stored)

	assert.Same(t, stored, GetLoggerInstanceFromContext(ctx, nil))
}

func TestNewLoggerWithJSONOutputTo_WritesJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger := NewLoggerWithJSONOutputTo(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "store", "memory")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"store":"memory"`)
}
