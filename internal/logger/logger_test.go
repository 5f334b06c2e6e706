package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{" warn ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestConfigurePrecedence(t *testing.T) {
	t.Cleanup(func() { Logger = newLogger(os.Stderr, log.InfoLevel) })

	t.Setenv(EnvLevel, "error")
	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())

	require.NoError(t, Configure("debug", ""))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	t.Setenv(EnvLevel, "")
	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())
}

func TestConfigureFile(t *testing.T) {
	t.Cleanup(func() {
		Close()
		Logger = newLogger(os.Stderr, log.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "argtags.log")
	require.NoError(t, Configure("warn", path))

	Info("hidden")
	Warn("shown", "line", 3)
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), "line=3")
}

func TestConfigureBadPath(t *testing.T) {
	err := Configure("", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}

func TestNewStyledLogger(t *testing.T) {
	t.Cleanup(func() { Logger = newLogger(os.Stderr, log.InfoLevel) })
	Logger = newLogger(os.Stderr, log.DebugLevel)

	var buf bytes.Buffer
	l := NewStyledLogger("tokenizer", &buf)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("event", "kind", "cmd")
	assert.Contains(t, buf.String(), "tokenizer")
	assert.Contains(t, buf.String(), "event")
}
