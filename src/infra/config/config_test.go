package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "monhaven", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Admin.Token)
	assert.Equal(t, float64(20), cfg.RateLimit.RPS)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_DB_NAME", "monhaven_test")
	t.Setenv("APP_ADMIN_TOKEN", "s3cret")
	t.Setenv("APP_RATE_LIMIT_RPS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "monhaven_test", cfg.Database.Name)
	assert.Equal(t, "s3cret", cfg.Admin.Token)
	assert.Equal(t, float64(5), cfg.RateLimit.RPS)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "mh",
		Password: "pw",
		Name:     "monhaven",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://mh:pw@db.internal:5433/monhaven?sslmode=require", c.DSN())
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8081}
	assert.Equal(t, "127.0.0.1:8081", c.Addr())
}
