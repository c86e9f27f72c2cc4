package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[auth]
trust_user_header = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Scheduling.NotificationPollIntervalSec)
	assert.Equal(t, LockDriverLocal, cfg.Lock.Driver)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_OverridesAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	path := writeConfig(t, `
[server]
http_port = 9090

[scheduling]
timezone = "America/Sao_Paulo"
persist_derived_status = true
sweep_interval = 60

[lock]
driver = "redis"
redis_addr = "localhost:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.True(t, cfg.Scheduling.PersistDerivedStatus)
	assert.Equal(t, 60, cfg.Scheduling.SweepIntervalSec)
	assert.Equal(t, "localhost:6379", cfg.Lock.RedisAddr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "redis without addr", mutate: func(c *Config) { c.Lock.Driver = LockDriverRedis }},
		{name: "no auth source", mutate: func(c *Config) { c.Auth = AuthConfig{} }},
		{name: "bad timezone", mutate: func(c *Config) { c.Scheduling.Timezone = "Mars/Olympus" }},
		{name: "events without brokers", mutate: func(c *Config) { c.Events.Enabled = true }},
		{name: "negative sweep", mutate: func(c *Config) { c.Scheduling.SweepIntervalSec = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.TrustUserHeader = true
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
