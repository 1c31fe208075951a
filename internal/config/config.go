// Package config loads application settings from a TOML file, with a .env
// file and process environment taking precedence for the remote API values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Environment variables recognized on top of the TOML file.
const (
	EnvAPIURL = "OCTALTASK_API_URL"
	EnvToken  = "OCTALTASK_TOKEN"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
}

// StorageConfig selects and locates the snapshot store.
type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// APIConfig points at the remote backend. An empty URL keeps the app fully
// local with simulated sharing.
type APIConfig struct {
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendSQLite},
		API:     APIConfig{TimeoutSeconds: 15},
	}
}

// Load loads configuration from the standard location.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home dir: %w", err)
	}
	return LoadFrom(filepath.Join(homeDir, ".config", "octaltask", "config.toml"))
}

// LoadFrom loads configuration from a specific path. A missing file is not
// an error; defaults and the environment still apply.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// a .env next to the config file can carry the API credentials
	_ = godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.API.Token = v
	}

	if cfg.Storage.Path != "" {
		cfg.Storage.Path = expandPath(cfg.Storage.Path)
	}
	if cfg.Storage.Backend != BackendSQLite && cfg.Storage.Backend != BackendJSON {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return cfg, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
