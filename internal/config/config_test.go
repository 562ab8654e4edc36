package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/copytree/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "copytree")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Symlinks)
	assert.Nil(t, cfg.Defaults.Perms)
	assert.Nil(t, cfg.Theme.OK)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
symlinks = true
perms = false
verify = true
bwlimit = "100M"
buffer_size = "64K"

[theme]
ok = "#00ff00"
error = "#ff0000"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Symlinks)
	assert.True(t, *cfg.Defaults.Symlinks)

	require.NotNil(t, cfg.Defaults.Perms)
	assert.False(t, *cfg.Defaults.Perms)

	require.NotNil(t, cfg.Defaults.Verify)
	assert.True(t, *cfg.Defaults.Verify)

	require.NotNil(t, cfg.Defaults.BWLimit)
	assert.Equal(t, "100M", *cfg.Defaults.BWLimit)

	require.NotNil(t, cfg.Defaults.BufferSize)
	assert.Equal(t, "64K", *cfg.Defaults.BufferSize)

	require.NotNil(t, cfg.Theme.OK)
	assert.Equal(t, "#00ff00", *cfg.Theme.OK)

	require.NotNil(t, cfg.Theme.Error)
	assert.Equal(t, "#ff0000", *cfg.Theme.Error)

	assert.Nil(t, cfg.Theme.Muted)
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[theme]
muted = "#888888"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Nil(t, cfg.Defaults.Symlinks)
	assert.Nil(t, cfg.Defaults.Verify)

	require.NotNil(t, cfg.Theme.Muted)
	assert.Equal(t, "#888888", *cfg.Theme.Muted)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, "invalid [[[")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadFile_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nperms = true\n"), 0o644))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Defaults.Perms)
	assert.True(t, *cfg.Defaults.Perms)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/copytree/config.toml", config.Path())
}
