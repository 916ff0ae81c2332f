// Package config loads archdiagram settings from a TOML or YAML file.
//
// The format is chosen by file extension: ".yaml" and ".yml" are parsed as
// YAML, everything else as TOML. Missing fields keep their [Default] values,
// so a config file only needs the settings it changes:
//
//	log_level = "debug"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[links]
//	theme = "dark"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "archdiagram"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete archdiagram configuration.
type Config struct {
	LogLevel  string          `toml:"log_level" yaml:"log_level"`
	Cache     CacheConfig     `toml:"cache" yaml:"cache"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Detection DetectionConfig `toml:"detection" yaml:"detection"`
	Links     LinksConfig     `toml:"links" yaml:"links"`
}

// CacheConfig selects and configures the document cache.
type CacheConfig struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url"`
	// TTL is a Go duration string such as "24h".
	TTL string `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// DetectionConfig bounds the cycle detector. Zero disables a limit.
type DetectionConfig struct {
	MaxDepth      int `toml:"max_depth" yaml:"max_depth"`
	MaxLineLength int `toml:"max_line_length" yaml:"max_line_length"`
}

// LinksConfig configures the Mermaid Live Editor links.
type LinksConfig struct {
	BaseURL string `toml:"base_url" yaml:"base_url"`
	Theme   string `toml:"theme" yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     "168h",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Links: LinksConfig{
			BaseURL: "https://mermaid.live",
			Theme:   "default",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/archdiagram/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName, "config.toml"), nil
}

// Load reads the config file at path over [Default] and validates the result.
// An empty path loads [DefaultPath] if that file exists and returns the
// defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := Parse(data, formatOf(path), &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes data into cfg using the given format ("toml" or "yaml").
// Fields absent from data keep their current values.
func Parse(data []byte, format string, cfg *Config) error {
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	case "toml":
		_, err = toml.Decode(string(data), cfg)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format: %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s config", format)
	}
	return nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Detection.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "detection.max_depth must not be negative")
	}
	if c.Detection.MaxLineLength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "detection.max_line_length must not be negative")
	}
	if c.Links.BaseURL != "" {
		if err := errors.ValidateURL(c.Links.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "links.base_url")
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	return nil
}

// CacheTTL parses Cache.TTL. An empty TTL means no expiry.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return d, nil
}
