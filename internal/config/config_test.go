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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  host: db
  user: trivia
  password: secret
  dbname: trivia
redis:
  enabled: true
  addr: redis:6379
quiz:
  session_backend: redis
  session_ttl: 10m
cache:
  categories_ttl: 1m
cors:
  allowed_origins:
    - http://localhost:3000
rate_limit:
  enabled: true
  max_requests: 30
  window: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "host=db port=5432 user=trivia password=secret dbname=trivia sslmode=disable", cfg.Database.PostgresConnectionString())
	assert.Equal(t, "postgres://trivia:secret@db:5432/trivia?sslmode=disable", cfg.Database.PostgresURL())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, SessionBackendRedis, cfg.Quiz.SessionBackend)
	assert.Equal(t, 10*time.Minute, cfg.Quiz.SessionTTL)
	assert.Equal(t, time.Minute, cfg.Cache.CategoriesTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_DefaultsWithMemoryDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SessionBackendMemory, cfg.Quiz.SessionBackend)
	assert.Equal(t, 30*time.Minute, cfg.Quiz.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
quiz:
  session_ttl: 10m
`)
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("QUIZ_SESSION_TTL", "45s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Quiz.SessionTTL)
}

func TestLoad_MissingDatabaseSettings(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: \"8080\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database configuration")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Driver: DriverMemory},
			Quiz:     QuizConfig{SessionBackend: SessionBackendMemory, SessionTTL: time.Minute, CleanupInterval: time.Minute},
			CORS:     CORSConfig{AllowedOrigins: []string{"*"}},
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "unknown database driver"},
		{"unknown backend", func(c *Config) { c.Quiz.SessionBackend = "disk" }, "unknown quiz session backend"},
		{"redis backend without redis", func(c *Config) { c.Quiz.SessionBackend = SessionBackendRedis }, "requires redis.enabled"},
		{"zero ttl", func(c *Config) { c.Quiz.SessionTTL = 0 }, "ttl must be positive"},
		{"zero cleanup interval", func(c *Config) { c.Quiz.CleanupInterval = 0 }, "cleanup interval must be positive"},
		{"rate limit without redis", func(c *Config) { c.RateLimit.Enabled = true }, "rate limiting requires"},
		{"rate limit without window", func(c *Config) {
			c.Redis.Enabled = true
			c.RateLimit = RateLimitConfig{Enabled: true, MaxRequests: 10}
		}, "positive max_requests and window"},
		{"no cors origins", func(c *Config) { c.CORS.AllowedOrigins = nil }, "allowed_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
