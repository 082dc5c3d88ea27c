package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		" INFO ":  log.InfoLevel,
		"warning": log.WarnLevel,
		"warn":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"chatty":  log.InfoLevel,
		"":        log.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	file := filepath.Join(t.TempDir(), "state", "wxsched.log")
	closer, err := Setup("debug", file)
	require.NoError(t, err)

	log.Info("executed", "request", "Connect 21080")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "executed")
	assert.Contains(t, string(data), "Connect 21080")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetupStderr(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	closer, err := Setup("warn", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}
