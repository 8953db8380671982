package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TRANSFORM90_DB", "TRANSFORM90_SYNC_IDENTITY", "TRANSFORM90_SYNC_REMOTE",
		"TRANSFORM90_SYNC_URL", "TRANSFORM90_LOG_LEVEL", "TRANSFORM90_LOG_FORMAT",
		"TRANSFORM90_LISTEN", "TRANSFORM90_ALLOW_INCOMPLETE", "TRANSFORM90_SYNC_INTERVAL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
database:
  path: /tmp/t90.db
  checkpoints: 10
program:
  allow_incomplete_days: true
sync:
  identity: me@example.com
  remote: http
  url: http://localhost:8090
  interval: 1m
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/t90.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Database.Checkpoints)
	assert.True(t, cfg.Program.AllowIncompleteDays)
	assert.Equal(t, "me@example.com", cfg.Sync.Identity)
	assert.Equal(t, RemoteHTTP, cfg.Sync.Remote)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Throttle, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSFORM90_DB", "/data/env.db")
	t.Setenv("TRANSFORM90_SYNC_IDENTITY", "env@example.com")
	t.Setenv("TRANSFORM90_ALLOW_INCOMPLETE", "true")
	t.Setenv("TRANSFORM90_SYNC_INTERVAL", "30s")
	t.Setenv("TRANSFORM90_LISTEN", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/data/env.db", cfg.Database.Path)
	assert.Equal(t, "env@example.com", cfg.Sync.Identity)
	assert.True(t, cfg.Program.AllowIncompleteDays)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, ":9999", cfg.Server.Listen)
}

func TestLoad_BadEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSFORM90_ALLOW_INCOMPLETE", "sometimes")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown remote", func(c *Config) { c.Sync.Remote = "s3" }},
		{"http without url", func(c *Config) { c.Sync.Remote = RemoteHTTP }},
		{"zero interval", func(c *Config) { c.Sync.Interval = 0 }},
		{"negative throttle", func(c *Config) { c.Sync.Throttle = -time.Second }},
		{"no checkpoints", func(c *Config) { c.Database.Checkpoints = 0 }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Sync.Identity = "saved@example.com"
	cfg.Sync.Interval = 2 * time.Minute
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("TRANSFORM90_CONFIG", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transform90", "config.yaml"), p)

	t.Setenv("TRANSFORM90_CONFIG", "/etc/t90.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/t90.yaml", p)
}
