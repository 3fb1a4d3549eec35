package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/container"
	"github.com/hbjs97/coal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidTOML(t *testing.T) {
	path := testutil.TempConfigFile(t, `version = 1
root_dir = "~/aliases"
active_marker = " (active)"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/aliases", cfg.RootDir)
	assert.Equal(t, " (active)", cfg.ActiveMarker)
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "*", cfg.ActiveMarker)
	assert.Empty(t, cfg.RootDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "invalid toml [[["},
		{"unsupported version", "version = 2"},
		{"quote in marker", `active_marker = "'"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(testutil.TempConfigFile(t, tt.content))
			assert.ErrorIs(t, err, config.ErrConfig)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &config.Config{Version: 1, RootDir: "/srv/cons", ActiveMarker: "<"}

	require.NoError(t, config.Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestResolveRoot(t *testing.T) {
	home := "/home/u"
	defaultRoot, err := container.DefaultRoot(home)
	require.NoError(t, err)

	tests := []struct {
		name       string
		rootDir    string
		override   string
		home       string
		wantPath   string
		wantSource string
	}{
		{"env override wins", "/cfg", "/env", home, "/env", "env"},
		{"env override expands tilde", "", "~/x", home, filepath.Join(home, "x"), "env"},
		{"config root", "~/cons", "", home, filepath.Join(home, "cons"), "config"},
		{"default", "", "", home, defaultRoot, "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Version: 1, RootDir: tt.rootDir}
			path, source, err := cfg.ResolveRoot(tt.override, tt.home)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestResolveRoot_NoHome(t *testing.T) {
	_, _, err := config.Default().ResolveRoot("", "")
	assert.ErrorIs(t, err, container.ErrNoHome)
}
