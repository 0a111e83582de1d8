package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	fn()
	return buf.String()
}

func TestSystemLoggerLevelFiltering(t *testing.T) {
	sl := NewSystemLogger(nil, SystemLoggerConfig{
		EnableConsole: true,
		MinLevel:      LevelWarn,
		Service:       "paygate",
	})

	out := captureOutput(t, func() {
		sl.Debug("debug message")
		sl.Info("info message")
		sl.Warn("warn message")
	})

	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestSystemLoggerErrorIncludesCause(t *testing.T) {
	sl := NewSystemLogger(nil, SystemLoggerConfig{
		EnableConsole: true,
		MinLevel:      LevelInfo,
		Service:       "paygate",
	})

	out := captureOutput(t, func() {
		sl.Error("request failed", errors.New("connection refused"))
	})

	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "connection refused")
}

func TestGlobalLoggerFallback(t *testing.T) {
	assert.NotNil(t, GetGlobalLogger())
}
