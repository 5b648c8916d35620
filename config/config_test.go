package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("AUTH_RATE_LIMIT", "")

	cfg := Load()
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 5, cfg.AuthRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.AuthRateWindow)
	assert.Equal(t, 100, cfg.APIRateLimit)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("API_RATE_LIMIT", "lots")
	t.Setenv("SESSION_TTL", "forever")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()
	assert.Equal(t, 100, cfg.APIRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
}

func TestValidateDevelopmentFallbacks(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment, DBDriver: DriverPostgres}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 4)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, devAdminPassword, cfg.AdminPassword)
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	cfg := &Config{Env: EnvProduction, DBDriver: DriverPostgres, RedisAddr: "localhost:6379"}

	_, err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
	assert.Empty(t, cfg.SessionSecret)
}

func TestValidateProductionComplete(t *testing.T) {
	cfg := &Config{
		Env:           EnvProduction,
		DBDriver:      DriverPostgres,
		DatabaseURL:   "postgres://u:p@db:5432/newsboard",
		SessionSecret: "s3cret",
		AdminPassword: "adminpass",
		RedisAddr:     "redis:6379",
	}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment, DBDriver: "mysql"}

	_, err := cfg.Validate()
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
