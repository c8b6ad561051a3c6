package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thingstodo/internal/codec"
)

func TestInitFile_TemplateLoadsAsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	written, err := InitFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
	assert.NoError(t, cfg.Validate(codec.Builtin()))
}

func TestInitFile_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := InitFile(path)
	require.NoError(t, err)

	_, err = InitFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitFile_ResolvedPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	written, err := InitFile("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thingstodo", "config.toml"), written)
}
