// Package config loads transform90 settings from YAML, .env files and
// TRANSFORM90_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Remote kinds.
const (
	RemoteLocal = "local"
	RemoteHTTP  = "http"
)

// Config holds all transform90 configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Program  ProgramConfig  `yaml:"program"`
	Sync     SyncConfig     `yaml:"sync"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	// Path of the database file. Empty means the default data location.
	Path string `yaml:"path"`

	// Checkpoints is how many daily checkpoints to keep.
	Checkpoints int `yaml:"checkpoints"`
}

// ProgramConfig adjusts progression rules.
type ProgramConfig struct {
	// AllowIncompleteDays records an unfinished day as a miss instead of
	// refusing to submit it.
	AllowIncompleteDays bool `yaml:"allow_incomplete_days"`
}

// SyncConfig configures cloud backup.
type SyncConfig struct {
	Identity string        `yaml:"identity"` // overrides the stored sync email
	Remote   string        `yaml:"remote"`   // local, http
	URL      string        `yaml:"url"`      // base URL for the http remote
	Interval time.Duration `yaml:"interval"`
	Throttle time.Duration `yaml:"throttle"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Checkpoints: 30,
		},
		Sync: SyncConfig{
			Remote:   RemoteLocal,
			Interval: 5 * time.Minute,
			Throttle: 5 * time.Minute,
			Timeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8090",
		},
	}
}

// DefaultPath resolves the config file path in priority order:
// 1. TRANSFORM90_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/transform90/config.yaml
// 3. ~/.config/transform90/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("TRANSFORM90_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "transform90", "config.yaml"), nil
}

// LoadDotEnv loads .env from the working directory into the process
// environment. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads configuration from path. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Sync.Remote {
	case RemoteLocal:
	case RemoteHTTP:
		if c.Sync.URL == "" {
			return errors.New("sync.url is required for the http remote")
		}
	default:
		return fmt.Errorf("unknown sync.remote %q (want %s or %s)", c.Sync.Remote, RemoteLocal, RemoteHTTP)
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync.interval must be positive, got %s", c.Sync.Interval)
	}
	if c.Sync.Throttle <= 0 {
		return fmt.Errorf("sync.throttle must be positive, got %s", c.Sync.Throttle)
	}
	if c.Sync.Timeout <= 0 {
		return fmt.Errorf("sync.timeout must be positive, got %s", c.Sync.Timeout)
	}
	if c.Database.Checkpoints < 1 {
		return fmt.Errorf("database.checkpoints must be at least 1, got %d", c.Database.Checkpoints)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// applyEnvOverrides applies TRANSFORM90_* environment variables.
func (c *Config) applyEnvOverrides() error {
	c.Database.Path = getEnv("TRANSFORM90_DB", c.Database.Path)
	c.Sync.Identity = getEnv("TRANSFORM90_SYNC_IDENTITY", c.Sync.Identity)
	c.Sync.Remote = getEnv("TRANSFORM90_SYNC_REMOTE", c.Sync.Remote)
	c.Sync.URL = getEnv("TRANSFORM90_SYNC_URL", c.Sync.URL)
	c.Logging.Level = getEnv("TRANSFORM90_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("TRANSFORM90_LOG_FORMAT", c.Logging.Format)
	c.Server.Listen = getEnv("TRANSFORM90_LISTEN", c.Server.Listen)

	if v, ok := os.LookupEnv("TRANSFORM90_ALLOW_INCOMPLETE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRANSFORM90_ALLOW_INCOMPLETE: %w", err)
		}
		c.Program.AllowIncompleteDays = b
	}
	if v, ok := os.LookupEnv("TRANSFORM90_SYNC_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRANSFORM90_SYNC_INTERVAL: %w", err)
		}
		c.Sync.Interval = d
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
