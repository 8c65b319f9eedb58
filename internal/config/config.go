package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/thenoetrevino/lista/internal/config/colors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL   = "http://localhost:8000/api"
	DefaultDomain    = "http://localhost:8000"
	DefaultVersion   = "v1"
	DefaultTimeout   = 30 * time.Second
	DefaultStaleTime = time.Minute
	DefaultGCTime    = 10 * time.Minute
)

// Config represents the application configuration
type Config struct {
	API         APIConfig          `yaml:"api"`
	Cache       CacheConfig        `yaml:"cache"`
	Log         LogConfig          `yaml:"log"`
	DataDir     string             `yaml:"data_dir" env:"LISTA_DATA_DIR"`
	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// APIConfig locates the REST backend
type APIConfig struct {
	// BaseURL is the API root; resource paths are appended after the version prefix
	BaseURL string `yaml:"base_url" env:"LISTA_API_URL"`
	// Domain serves the CSRF cookie endpoint
	Domain  string        `yaml:"domain" env:"LISTA_API_DOMAIN"`
	Version string        `yaml:"version" env:"LISTA_API_VERSION"`
	Timeout time.Duration `yaml:"timeout" env:"LISTA_API_TIMEOUT"`
}

// CacheConfig tunes the query cache
type CacheConfig struct {
	StaleTime time.Duration `yaml:"stale_time" env:"LISTA_CACHE_STALE_TIME"`
	GCTime    time.Duration `yaml:"gc_time" env:"LISTA_CACHE_GC_TIME"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level      string `yaml:"level" env:"LISTA_LOG_LEVEL"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile loads and merges theme from LISTA_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("LISTA_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load reads the config file at path, or the default location when path is empty.
// A missing file yields the defaults. Environment variables override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = getConfigPath()
		if err != nil {
			path = ""
		}
	}

	config := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	loadThemeFile(config)

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	config.applyDefaults()

	return config, nil
}

// Save saves the config to path, or to the default location when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		path, err = getConfigPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lista", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "lista", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Domain == "" {
		c.API.Domain = DefaultDomain
	}
	if c.API.Version == "" {
		c.API.Version = DefaultVersion
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.Cache.StaleTime <= 0 {
		c.Cache.StaleTime = DefaultStaleTime
	}
	if c.Cache.GCTime <= 0 {
		c.Cache.GCTime = DefaultGCTime
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
	if c.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataDir = filepath.Join(home, ".lista")
		} else {
			c.DataDir = ".lista"
		}
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
