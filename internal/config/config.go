// Package config loads feedshelf configuration from defaults, an optional
// YAML file and FEEDSHELF_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	envconfig "feedshelf/pkg/config"
)

// AppName names the XDG subdirectories used for config and data.
const AppName = "feedshelf"

// Supported database drivers for the subscription mirror.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config is the complete application configuration.
type Config struct {
	// File is the OPML document holding the subscriptions.
	// Default: $XDG_DATA_HOME/feedshelf/subscriptions.opml
	File string `yaml:"file"`

	// Title is written to the OPML head. Default: "Subscriptions"
	Title string `yaml:"title"`

	// DefaultFolder is the reserved name of the folder for ungrouped feeds.
	// Default: "default"
	DefaultFolder string `yaml:"default_folder"`

	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Resolve  ResolveConfig  `yaml:"resolve"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Format is "text" or "json". Default: "text"
	Format string `yaml:"format"`
	// Level is "debug" or "info". Default: "info"
	Level string `yaml:"level"`
}

// DatabaseConfig locates the optional subscription mirror.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres". Default: "sqlite"
	Driver string `yaml:"driver"`
	// URL is a file path for sqlite or a connection string for postgres.
	// Default: $XDG_DATA_HOME/feedshelf/subscriptions.db
	URL string `yaml:"url"`
}

// ResolveConfig tunes feed title resolution.
type ResolveConfig struct {
	// Parallelism bounds concurrent feed fetches. Default: 4
	Parallelism int `yaml:"parallelism"`
	// Timeout bounds a single feed fetch. Default: 20s
	Timeout time.Duration `yaml:"timeout"`
	// RatePerSecond limits outbound fetches. Default: 5
	RatePerSecond float64 `yaml:"rate_per_second"`
	// UserAgent is sent with feed requests. Default: "feedshelf"
	UserAgent string `yaml:"user_agent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	return &Config{
		File:          filepath.Join(dataDir, "subscriptions.opml"),
		Title:         "Subscriptions",
		DefaultFolder: "default",
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			URL:    filepath.Join(dataDir, "subscriptions.db"),
		},
		Resolve: ResolveConfig{
			Parallelism:   4,
			Timeout:       20 * time.Second,
			RatePerSecond: 5,
			UserAgent:     AppName,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/feedshelf/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load builds the configuration. An explicit path must exist; without one
// the default path is used when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto cfg.
// The path parameter comes from a trusted source (CLI flag or XDG default).
func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path is provided by the user running the CLI
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.File = envconfig.GetEnvString("FEEDSHELF_FILE", c.File)
	c.Title = envconfig.GetEnvString("FEEDSHELF_TITLE", c.Title)
	c.DefaultFolder = envconfig.GetEnvString("FEEDSHELF_DEFAULT_FOLDER", c.DefaultFolder)
	c.Log.Format = envconfig.GetEnvString("FEEDSHELF_LOG_FORMAT", c.Log.Format)
	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Database.Driver = envconfig.GetEnvString("FEEDSHELF_DB_DRIVER", c.Database.Driver)
	c.Database.URL = envconfig.GetEnvString("DATABASE_URL", c.Database.URL)
	c.Resolve.Parallelism = envconfig.GetEnvInt("FEEDSHELF_RESOLVE_PARALLELISM", c.Resolve.Parallelism)
	c.Resolve.Timeout = envconfig.GetEnvDuration("FEEDSHELF_RESOLVE_TIMEOUT", c.Resolve.Timeout)
	c.Resolve.RatePerSecond = envconfig.GetEnvFloat("FEEDSHELF_RESOLVE_RATE", c.Resolve.RatePerSecond)
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("file is required")
	}
	if c.DefaultFolder == "" {
		return fmt.Errorf("default_folder is required")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database driver must be %s or %s, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}

	if c.Resolve.Parallelism < 1 || c.Resolve.Parallelism > 32 {
		return fmt.Errorf("resolve parallelism must be between 1 and 32, got %d", c.Resolve.Parallelism)
	}
	if err := envconfig.ValidateDurationRange(c.Resolve.Timeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("invalid resolve timeout: %w", err)
	}
	if c.Resolve.RatePerSecond <= 0 {
		return fmt.Errorf("resolve rate_per_second must be positive, got %v", c.Resolve.RatePerSecond)
	}

	return nil
}

// Debug reports whether debug logging is requested.
func (c *Config) Debug() bool { return c.Log.Level == "debug" }
