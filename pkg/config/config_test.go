package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agenthands/dtmkey/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./xref-index", cfg.Index.Dir)
	assert.False(t, cfg.Index.Sync)
	assert.Equal(t, 256, cfg.Limits.MaxLabelLen)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("index:\n  dir: /var/lib/dtmkey\n  sync: true\nlogging:\n  level: debug\n")
		require.NoError(t, os.WriteFile(configPath, data, 0600))

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/dtmkey", cfg.Index.Dir)
		assert.True(t, cfg.Index.Sync)
		assert.Equal(t, "debug", cfg.Logging.Level)
		// untouched sections keep their defaults
		assert.Equal(t, 16, cfg.Limits.MaxTags)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("index: [unclosed"), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Index.Dir = "/tmp/index"
	require.NoError(t, SaveConfig(cfg, configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(DefaultConfig().Logging)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = NewLogger(core.LoggingConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	// empty level falls back to info
	l, err = NewLogger(core.LoggingConfig{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	cfg := DefaultConfig().Logging
	cfg.Level = "chatty"
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}
