package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, "v", defaults.CycleView)
	assert.Equal(t, "f", defaults.ToggleFavorite)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultVersion, cfg.API.Version)
	assert.Equal(t, DefaultStaleTime, cfg.Cache.StaleTime)
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "lista")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	configContent := `api:
  base_url: "https://tasks.example.com/api"
  version: "v2"
  timeout: 5s
cache:
  stale_time: 30s
key_mappings:
  quit: "x"
theme:
  preset: monochrome
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://tasks.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "v2", cfg.API.Version)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Cache.StaleTime)
	assert.Equal(t, DefaultGCTime, cfg.Cache.GCTime)
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	// Unset mappings still get defaults
	assert.Equal(t, "j", cfg.KeyMappings.Down)
	assert.Equal(t, "#FFFFFF", cfg.ColorScheme.Accent)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  version: v2\n"), 0o644))

	t.Setenv("LISTA_API_VERSION", "v3")
	t.Setenv("LISTA_API_URL", "http://127.0.0.1:9999/api")
	t.Setenv("LISTA_DATA_DIR", dir)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "v3", cfg.API.Version)
	assert.Equal(t, "http://127.0.0.1:9999/api", cfg.API.BaseURL)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.API.Version = "v9"
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "v9", reloaded.API.Version)
}
