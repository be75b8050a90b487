package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://localhost:1000/api/")
		t.Setenv("SECRET_KEY", "console-secret")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("REQUEST_TIMEOUT", "3s")
		t.Setenv("SESSION_TTL", "1h")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:1000/api/", cfg.APIBaseURL)
		assert.Equal(t, "console-secret", cfg.SecretKey)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.True(t, cfg.AuditEnabled())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api")
		t.Setenv("SECRET_KEY", "s")
		t.Setenv("APP_PORT", "")
		t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
		t.Setenv("SESSION_TTL", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PORT", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.False(t, cfg.AuditEnabled())
	})

	t.Run("Missing API base URL", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")
		t.Setenv("SECRET_KEY", "s")

		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrMissingAPIBaseURL)
	})

	t.Run("Missing secret key", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api")
		t.Setenv("SECRET_KEY", "")

		cfg, err := Load()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrMissingSecretKey)
	})
}

func TestLoadDatabase(t *testing.T) {
	t.Run("Only DB variables needed", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")
		t.Setenv("SECRET_KEY", "")
		t.Setenv("DB_HOST", "db")

		cfg, err := LoadDatabase()
		require.NoError(t, err)
		assert.Equal(t, "db", cfg.DBHost)
	})

	t.Run("Missing host", func(t *testing.T) {
		t.Setenv("DB_HOST", "")

		_, err := LoadDatabase()
		assert.ErrorIs(t, err, ErrMissingDBHost)
	})
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{AppEnv: "production"}).IsProduction())
	assert.False(t, (&Config{AppEnv: "development"}).IsProduction())
}
