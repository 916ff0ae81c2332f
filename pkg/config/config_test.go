package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `log_level = "debug"

[cache]
backend = "none"
ttl = "1h"

[detection]
max_depth = 8

[links]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Detection.MaxDepth != 8 {
		t.Errorf("Detection.MaxDepth = %d, want 8", cfg.Detection.MaxDepth)
	}
	if cfg.Links.Theme != "dark" {
		t.Errorf("Links.Theme = %q, want dark", cfg.Links.Theme)
	}
	if cfg.Links.BaseURL != "https://mermaid.live" {
		t.Errorf("unset Links.BaseURL should keep default, got %q", cfg.Links.BaseURL)
	}
	if ttl, _ := cfg.CacheTTL(); ttl != time.Hour {
		t.Errorf("CacheTTL() = %v, want 1h", ttl)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `server:
  addr: ":9090"
cache:
  backend: redis
  redis_url: redis://localhost:6379/0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Detection.MaxDepth != 0 {
		t.Errorf("unset Detection.MaxDepth should stay unlimited, got %d", cfg.Detection.MaxDepth)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without a config file should return defaults, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing path: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, AppName, "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestParseInvalid(t *testing.T) {
	cfg := Default()
	if err := Parse([]byte("log_level = "), "toml", &cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("malformed TOML: got %v, want INVALID_CONFIG", err)
	}
	if err := Parse([]byte("x"), "ini", &cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown format: got %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"redis without url", func(c *Config) { c.Cache.Backend = BackendRedis }, false},
		{"redis with url", func(c *Config) {
			c.Cache.Backend = BackendRedis
			c.Cache.RedisURL = "redis://localhost:6379"
		}, true},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "forever" }, false},
		{"negative ttl", func(c *Config) { c.Cache.TTL = "-1h" }, false},
		{"empty ttl", func(c *Config) { c.Cache.TTL = "" }, true},
		{"negative depth", func(c *Config) { c.Detection.MaxDepth = -1 }, false},
		{"negative line length", func(c *Config) { c.Detection.MaxLineLength = -1 }, false},
		{"unlimited depth", func(c *Config) { c.Detection.MaxDepth = 0 }, true},
		{"ftp base url", func(c *Config) { c.Links.BaseURL = "ftp://mermaid.live" }, false},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }, false},
		{"upper case log level", func(c *Config) { c.LogLevel = "DEBUG" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
