package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestHandler_FieldsAndMasking(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{
		ServiceName: "webkit",
		MaskFields:  []string{" Token ", ""},
	}, nil))

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.InfoContext(ctx, "image loaded",
		"url", "https://cdn.example.com/a.png",
		"token", "secret",
		slog.Group("auth", slog.String("TOKEN", "nested")),
		"headers", map[string]any{"token": "x", "accept": "image/*"},
	)

	line := decodeLine(t, buf)
	assert.Equal(t, "image loaded", line["msg"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
	assert.Equal(t, "webkit", line["service"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "***", line["token"])
	assert.Equal(t, map[string]any{"TOKEN": "***"}, line["auth"])
	assert.Equal(t, map[string]any{"token": "***", "accept": "image/*"}, line["headers"])
	assert.Equal(t, "https://cdn.example.com/a.png", line["url"])
}

func TestHandler_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newHandler(buf, &Config{LogLevel: "warn"}, nil))

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Equal(t, "kept", decodeLine(t, buf)["msg"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetCorrelationID(ctx))

	ctx = EnsureCorrelationID(ctx)
	cID := GetCorrelationID(ctx)
	assert.NotEmpty(t, cID)
	assert.Equal(t, cID, GetCorrelationID(EnsureCorrelationID(ctx)))
	assert.NotEqual(t, NewCorrelationID(), NewCorrelationID())
}

func TestNew_DisabledIsNoop(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), nil)
	require.NoError(t, err)

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()
	_, err = ins.Meter("test").Int64Counter("count")
	assert.NoError(t, err)
	assert.NoError(t, ins.Shutdown(context.Background()))
}
