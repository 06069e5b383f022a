// ABOUTME: Reps configuration: TOML file, .env and environment overrides.
// ABOUTME: Also the storage factory choosing local SQLite or a remote libsql database.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harperreed/reps/internal/storage"
	"github.com/joho/godotenv"
)

// Config stores reps configuration.
type Config struct {
	// DataDir is where reps.db lives. Supports ~ expansion.
	// Defaults to ~/.local/share/reps.
	DataDir string `toml:"data_dir,omitempty"`

	// DatabaseURL selects a remote libsql database (e.g. libsql://name.turso.io)
	// instead of the local file.
	DatabaseURL       string `toml:"database_url,omitempty"`
	DatabaseAuthToken string `toml:"database_auth_token,omitempty"`

	// MetricsAddr is the listen address of the Prometheus endpoint.
	MetricsAddr string `toml:"metrics_addr,omitempty"`

	Log    LogConfig    `toml:"log"`
	Sentry SentryConfig `toml:"sentry"`
}

// LogConfig controls where and how logs are written.
type LogConfig struct {
	Level  string `toml:"level,omitempty"`
	File   string `toml:"file,omitempty"`
	Stdout bool   `toml:"stdout,omitempty"`
	JSON   bool   `toml:"json,omitempty"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `toml:"dsn,omitempty"`
	Environment string `toml:"environment,omitempty"`
}

// DefaultMetricsAddr is used by "reps mcp --metrics" when nothing is configured.
const DefaultMetricsAddr = "127.0.0.1:9464"

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the local database file inside the data directory.
func (c *Config) GetDBPath() string {
	return filepath.Join(c.GetDataDir(), "reps.db")
}

// GetMetricsAddr returns the metrics listen address.
func (c *Config) GetMetricsAddr() string {
	if c.MetricsAddr == "" {
		return DefaultMetricsAddr
	}
	return c.MetricsAddr
}

// IsRemote reports whether a remote database is configured.
func (c *Config) IsRemote() bool {
	return c.DatabaseURL != ""
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the configured database.
func (c *Config) OpenStorage() (*storage.DB, error) {
	if c.IsRemote() {
		return storage.OpenURL(c.DatabaseURL, c.DatabaseAuthToken)
	}
	return storage.Open(c.GetDBPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "reps", "config.toml")
}

// Load reads the config file at the default path, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads config from path. A missing file yields the defaults.
// Variables from a .env file in the working directory are loaded first and
// never replace variables already set in the environment.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// ReadFile decodes path without applying environment overrides.
func ReadFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"REPS_DATA_DIR", &c.DataDir},
		{"TURSO_DATABASE_URL", &c.DatabaseURL},
		{"TURSO_AUTH_TOKEN", &c.DatabaseAuthToken},
		{"REPS_LOG_LEVEL", &c.Log.Level},
		{"REPS_METRICS_ADDR", &c.MetricsAddr},
		{"SENTRY_DSN", &c.Sentry.DSN},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
}

// SaveFile writes config to path.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
