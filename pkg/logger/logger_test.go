package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farmsim.log")

	log, err := New(Options{Level: "WARN", OutputPath: path})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log.Warn("barn on fire")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "barn on fire")
	assert.Contains(t, string(data), `"timestamp"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNamed_NilBase(t *testing.T) {
	log := Named(nil, "game")
	require.NotNil(t, log)
	log.Info("discarded")
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() {
		Must(New(Options{Level: "loud"}))
	})
}
