package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuild_LevelFallback(t *testing.T) {
	l, cleanup := New("not-a-level", true)
	defer cleanup()

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithRotate_WritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("debug", true, FileRotate{Filename: file, MaxSizeMB: 1})
	l.Info("hello rotate")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello rotate")
}

func TestToStdLogger(t *testing.T) {
	l, cleanup := New("info", true)
	defer cleanup()

	std, err := ToStdLogger(l, zapcore.InfoLevel)
	require.NoError(t, err)
	std.Printf("bridged %d", 1)
}
