package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.Form("signup")))
		log.Info("msg")
		assert.Equal(t, "signup", decode(t, buf)["form"])
	})

	t.Run("context values", func(t *testing.T) {
		type key struct{}
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("session_id", key{}))

		ctx := context.WithValue(context.Background(), key{}, "s-1")
		log.InfoContext(ctx, "with session")
		assert.Equal(t, "s-1", decode(t, buf)["session_id"])

		buf.Reset()
		log.With("a", 1).InfoContext(ctx, "derived logger keeps extractors")
		assert.Equal(t, "s-1", decode(t, buf)["session_id"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("dev", "formflow"))
		log.Debug("visible")
		out := buf.String()
		assert.Contains(t, out, "visible")
		assert.Contains(t, out, "service=formflow")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithEnvironment("prod", "formflow"))
		log.Debug("hidden")
		assert.Empty(t, buf.String())
		log.Info("shown")
		entry := decode(t, buf)
		assert.Equal(t, "production", entry["env"])
		assert.Equal(t, "formflow", entry["service"])
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Contains(t, buf.String(), "default")
}

func TestInvalidOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { logger.WithFormat("xml") })
	assert.Panics(t, func() { logger.WithLevelName("loud") })
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { logger.Discard().Error("nothing") })
}
