// ABOUTME: Tests for reps configuration management.
// ABOUTME: Covers load, save, defaults, environment overrides, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
	if !strings.HasSuffix(got, "reps") {
		t.Errorf("GetDataDir() = %q, want a reps directory", got)
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/reps-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "reps-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestGetDBPath(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/reps-test"}
	if got := cfg.GetDBPath(); got != "/tmp/reps-test/reps.db" {
		t.Errorf("GetDBPath() = %q, want %q", got, "/tmp/reps-test/reps.db")
	}
}

func TestGetMetricsAddr(t *testing.T) {
	if got := (&Config{}).GetMetricsAddr(); got != DefaultMetricsAddr {
		t.Errorf("GetMetricsAddr() = %q, want %q", got, DefaultMetricsAddr)
	}
	if got := (&Config{MetricsAddr: ":9000"}).GetMetricsAddr(); got != ":9000" {
		t.Errorf("GetMetricsAddr() = %q, want %q", got, ":9000")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/reps", filepath.Join(home, "data/reps")},
		{"data/reps", "data/reps"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "reps", "config.toml")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"REPS_DATA_DIR", "TURSO_DATABASE_URL", "REPS_LOG_LEVEL"} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
	if cfg.IsRemote() {
		t.Error("Expected local storage by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "nonexistent"))
	t.Setenv("REPS_DATA_DIR", "")
	t.Setenv("REPS_LOG_LEVEL", "")

	cfg := &Config{
		DataDir: "/tmp/reps-data",
		Log:     LogConfig{Level: "debug", JSON: true},
		Sentry:  SentryConfig{Environment: "dev"},
	}
	if err := cfg.SaveFile(GetConfigPath()); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DataDir != "/tmp/reps-data" {
		t.Errorf("DataDir mismatch: got %q, want %q", loaded.DataDir, "/tmp/reps-data")
	}
	if loaded.Log.Level != "debug" || !loaded.Log.JSON {
		t.Errorf("Log mismatch: got %+v", loaded.Log)
	}
	if loaded.Sentry.Environment != "dev" {
		t.Errorf("Sentry.Environment = %q, want %q", loaded.Sentry.Environment, "dev")
	}
}

func TestLoadFileReadsTOML(t *testing.T) {
	t.Setenv("TURSO_DATABASE_URL", "")
	t.Setenv("TURSO_AUTH_TOKEN", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
database_url = "libsql://reps.example.turso.io"
database_auth_token = "secret"
metrics_addr = ":9100"

[log]
level = "warn"
file = "/var/log/reps"
`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if !cfg.IsRemote() || cfg.DatabaseAuthToken != "secret" {
		t.Errorf("database settings not loaded: %+v", cfg)
	}
	if cfg.GetMetricsAddr() != ":9100" {
		t.Errorf("GetMetricsAddr() = %q, want %q", cfg.GetMetricsAddr(), ":9100")
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/var/log/reps" {
		t.Errorf("Log mismatch: got %+v", cfg.Log)
	}
}

func TestLoadFileEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = "/from/file"`), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REPS_DATA_DIR", "/from/env")
	t.Setenv("REPS_LOG_LEVEL", "error")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/from/env")
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "error")
	}
	if cfg.Sentry.DSN != "https://key@sentry.example/1" {
		t.Errorf("Sentry.DSN = %q", cfg.Sentry.DSN)
	}
}

func TestReadFileIgnoresEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = "/from/file"`), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REPS_DATA_DIR", "/from/env")

	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if cfg.DataDir != "/from/file" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/from/file")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("data_dir = "), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("Expected error for invalid TOML config")
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	db, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "reps.db")); os.IsNotExist(err) {
		t.Error("Expected reps.db to be created")
	}
}
