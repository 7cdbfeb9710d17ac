package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerLevelFilter(t *testing.T) {
	var out bytes.Buffer
	l := NewZerologLoggerWith("test", Options{Level: "warn", Out: &out})

	l.Debugf("debug %d", 1)
	l.Infof("info %s", "msg")
	l.Warnf("warn msg")
	l.Errorf("error msg")

	s := out.String()
	assert.NotContains(t, s, "info msg")
	assert.Contains(t, s, "warn msg")
	assert.Contains(t, s, "error msg")
	assert.Contains(t, s, `"component":"test"`)
}

func TestZerologLoggerDebugLevel(t *testing.T) {
	var out bytes.Buffer
	l := NewZerologLoggerWith("test", Options{Level: "debug", Out: &out})

	l.Debugw("routing step", map[string]any{"step": 3})

	s := out.String()
	assert.Contains(t, s, "routing step")
	assert.Contains(t, s, `"step":3`)
}

func TestZerologLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var out bytes.Buffer
	l := NewZerologLoggerWith("test", Options{Level: "loud", Out: &out})

	l.Debugf("hidden")
	l.Infof("visible")

	s := out.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "visible")
}

func TestZerologLoggerConsoleMode(t *testing.T) {
	var out bytes.Buffer
	l := NewZerologLoggerWith("test", Options{Console: true, Out: &out})

	l.Infof("console line")
	require.NotEmpty(t, out.String())
	// Console output is formatted text, not JSON.
	assert.NotContains(t, out.String(), `"message"`)
	assert.Contains(t, out.String(), "console line")
}

func TestNewZerologLoggerFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Infof("smoke")
}
