package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emberdump.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `
max_frame_size = 4096
log_level = "debug"
hex = true
`))
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.MaxFrameSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Hex)
}

func TestLoadConfig_partial(t *testing.T) {
	// Keys absent from the file keep their defaults.
	cfg, err := loadConfig(writeConfig(t, `max_frame_size = 100`))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxFrameSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Hex)
}

func TestLoadConfig_errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = loadConfig(writeConfig(t, `max_frame_size = "not a number"`))
	assert.Error(t, err)
}
