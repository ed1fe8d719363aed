package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	Level     string `json:"level"`
	Message   string `json:"msg"`
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
	Error     string `json:"error"`
	Resource  string `json:"resource"`
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) logEntry {
	t.Helper()
	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	t.Run("debug not logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug message")
		assert.Zero(t, buf.Len())
	})

	t.Run("info logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Info("info message")
		entry := decodeEntry(t, &buf)
		assert.Equal(t, "info", entry.Level)
		assert.Equal(t, "info message", entry.Message)
	})

	t.Run("warn and error logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Warnf("warn %d", 1)
		assert.Equal(t, "warning", decodeEntry(t, &buf).Level)

		buf.Reset()
		logger.Errorf("error %d", 2)
		entry := decodeEntry(t, &buf)
		assert.Equal(t, "error", entry.Level)
		assert.Equal(t, "error 2", entry.Message)
	})
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DebugLevel, &buf)

	logger.WithFields(map[string]interface{}{"resource": "categories"}).
		WithError(errors.New("boom")).
		Debug("upstream failed")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "categories", entry.Resource)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, "debug", entry.Level)
}

func TestLogger_WithNilError(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	assert.Same(t, logger, logger.WithError(nil))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	ctx := WithLogger(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-9")

	FromContext(ctx).Info("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "user-9", entry.UserID)
}

func TestFromContextOr(t *testing.T) {
	var fallbackBuf, ctxBuf bytes.Buffer
	fallback := NewLogger(InfoLevel, &fallbackBuf)

	ctx := WithRequestID(context.Background(), "req-2")
	FromContextOr(ctx, fallback).Info("from fallback")
	assert.Equal(t, "req-2", decodeEntry(t, &fallbackBuf).RequestID)

	ctx = WithLogger(ctx, NewLogger(InfoLevel, &ctxBuf))
	FromContextOr(ctx, fallback).Info("from context")
	assert.Equal(t, "from context", decodeEntry(t, &ctxBuf).Message)
	assert.Equal(t, 1, bytes.Count(fallbackBuf.Bytes(), []byte("\n")))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, ErrorLevel, ParseLogLevel(" error "))
	assert.Equal(t, InfoLevel, ParseLogLevel("verbose"))
	assert.Equal(t, "WARN", WarnLevel.String())
}
