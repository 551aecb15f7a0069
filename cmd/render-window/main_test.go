package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render-window.yaml")
	require.NoError(t, os.WriteFile(path, []byte("renderer:\n  vsync: true\n  msaa: 4\nprofile: true\n"), 0o644))

	f, fs, err := parseFlags([]string{"--config", path, "--vsync=false", "--msaa", "1"})
	require.NoError(t, err)
	cfg, err := loadConfig(f, fs)
	require.NoError(t, err)

	assert.False(t, cfg.Renderer.VSync)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.True(t, cfg.Profile, "unset flags leave the file's value")
}

func TestDefaultsWithoutConfig(t *testing.T) {
	f, fs, err := parseFlags(nil)
	require.NoError(t, err)
	cfg, err := loadConfig(f, fs)
	require.NoError(t, err)

	assert.True(t, cfg.Renderer.VSync)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
	assert.False(t, cfg.Profile)
}

func TestInvalidMSAAFlag(t *testing.T) {
	f, fs, err := parseFlags([]string{"--msaa", "2"})
	require.NoError(t, err)
	_, err = loadConfig(f, fs)
	assert.ErrorContains(t, err, "msaa")
}
