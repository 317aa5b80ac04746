package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ripple.log")
	logger, err := New(path, zapcore.InfoLevel)
	require.NoError(t, err)

	logger.Named("playback").Info("worker ready", zap.String("user", "ana"))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "playback")
	assert.Contains(t, out, "worker ready")
	assert.NotContains(t, out, "hidden")
}

func TestNew_Nop(t *testing.T) {
	logger, err := New("", zapcore.DebugLevel)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
