package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()
	l, err := New(false)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel), "debug disabled by default")

	l, err = New(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel), "verbose enables debug")
}

func TestNewWithFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	l, err := NewWithFile(path, false)
	require.NoError(t, err)

	l.Info("run started")
	// stdout does not support sync on every platform, only the file matters here
	_ = l.Sync()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "run started")
}
