package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config search path at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "threadtree", filepath.Base(cfg.CacheDir))
	assert.Equal(t, filepath.Join(cfg.CacheDir, "cache.db"), cfg.DBPath)
	assert.Equal(t, SourceFirebase, cfg.Source)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, 0, cfg.Width)
	assert.True(t, cfg.UseCache)
	assert.Equal(t, 10*time.Minute, cfg.ItemTTL)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "threadtree")
	require.NoError(t, os.MkdirAll(confDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(`
width = 100
color = "never"
source = "algolia"
item_ttl = "1h"
`), 0o644))
	t.Setenv("THREADTREE_WIDTH", "120")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width, "env beats file")
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, SourceAlgolia, cfg.Source)
	assert.Equal(t, time.Hour, cfg.ItemTTL)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pager: true\ncache_dir: "+dir+"\n"), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.True(t, cfg.Pager)
	assert.Equal(t, filepath.Join(dir, "debug.log"), cfg.LogPath)
}

func TestLoadInvalid(t *testing.T) {
	isolate(t)

	v := viper.New()
	v.Set("color", "rainbow")
	v.Set("source", "usenet")
	v.Set("width", -1)
	v.Set("item_ttl", "0s")

	_, err := Load(v)
	require.Error(t, err)
	for _, want := range []string{
		`source must be "firebase" or "algolia"`,
		"color must be auto, always or never",
		"width must not be negative",
		"item_ttl must be greater than 0",
	} {
		assert.Contains(t, err.Error(), want)
	}
}
