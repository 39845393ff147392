package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_DefaultsPlusSecret(t *testing.T) {
	t.Setenv("TASKMANAGER_AUTH_JWT_SECRET", goodSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/tasks.db", cfg.Database.DSN)
	assert.Equal(t, goodSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("TASKMANAGER_AUTH_JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TASKMANAGER_AUTH_JWT_SECRET", goodSecret)
	t.Setenv("TASKMANAGER_SERVER_PORT", "9090")
	t.Setenv("TASKMANAGER_DATABASE_DRIVER", "postgres")
	t.Setenv("TASKMANAGER_DATABASE_DSN", "postgres://app@localhost/tasks")
	t.Setenv("TASKMANAGER_AUTH_TOKEN_TTL", "2h")
	t.Setenv("TASKMANAGER_AUTH_BCRYPT_COST", "10")
	t.Setenv("TASKMANAGER_LOG_LEVEL", "debug")
	t.Setenv("TASKMANAGER_LOG_FORMAT", "text")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://app@localhost/tasks", cfg.Database.DSN)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 7000
database:
  dsn: /var/lib/tasks/tasks.db
auth:
  jwt_secret: ` + goodSecret + `
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("TASKMANAGER_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/var/lib/tasks/tasks.db", cfg.Database.DSN)
	assert.Equal(t, goodSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, "error", cfg.Log.Level, "environment wins over the file")
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{
				Port:            8080,
				ReadTimeout:     time.Second,
				WriteTimeout:    time.Second,
				IdleTimeout:     time.Second,
				ShutdownTimeout: time.Second,
			},
			Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
			Auth:     AuthConfig{JWTSecret: goodSecret, TokenTTL: time.Hour, BcryptCost: 12},
			Log:      LogConfig{Level: "info", Format: "json"},
		}
	}

	base := valid()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"ttl too short", func(c *Config) { c.Auth.TokenTTL = time.Second }},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 3 }},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer

	LogConfig{Level: "warn", Format: "json"}.Logger(&buf).Info("hidden")
	assert.Empty(t, buf.String(), "info is below warn")

	LogConfig{Level: "debug", Format: "text"}.Logger(&buf).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
