package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathEnv(t *testing.T) {
	t.Setenv("LIVENUM_LOG_FILE", "/tmp/custom.log")
	got, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", got)

	t.Setenv("LIVENUM_LOG_FILE", "")
	t.Setenv("LIVENUM_CONFIG_HOME", "/tmp/livenum")
	got, err = Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/livenum/livenum.log", got)
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "livenum.log")
	t.Setenv("LIVENUM_LOG_FILE", path)

	require.NoError(t, Init(true))
	Debug("debug line", "key", "value")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}

func TestHelpersWithoutInit(t *testing.T) {
	Close()
	assert.NotPanics(t, func() {
		Debug("x")
		Info("x")
		Warn("x")
		Error("x")
	})
}
