package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpweb/authkit/pkg/logger"
)

func TestEmail_Masked(t *testing.T) {
	t.Run("regular address", func(t *testing.T) {
		attr := logger.Email("alice@example.com")
		assert.Equal(t, "email", attr.Key)
		assert.Equal(t, "a****@example.com", attr.Value.String())
	})

	t.Run("single char local part", func(t *testing.T) {
		attr := logger.Email("a@example.com")
		assert.Equal(t, "*@example.com", attr.Value.String())
	})

	t.Run("not an email", func(t *testing.T) {
		attr := logger.Email("garbage")
		assert.Equal(t, "***", attr.Value.String())
	})

	t.Run("empty", func(t *testing.T) {
		attr := logger.Email("")
		assert.True(t, attr.Equal(slog.Attr{}))
	})
}

func TestSessionID_Truncated(t *testing.T) {
	attr := logger.SessionID("abcdefghijklmnop")
	assert.Equal(t, "abcdefgh…", attr.Value.String())
}

func TestError(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithService("authkit"),
	)

	log.Info("hello", logger.Component("test"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "authkit", record["service"])
	assert.Equal(t, "test", record["component"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestWithFormat_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat("xml"))
	})
}
