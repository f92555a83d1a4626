package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STOREBOARD_APP_NAME":          os.Getenv("STOREBOARD_APP_NAME"),
		"STOREBOARD_APP_ENV":           os.Getenv("STOREBOARD_APP_ENV"),
		"STOREBOARD_APP_PORT":          os.Getenv("STOREBOARD_APP_PORT"),
		"STOREBOARD_DATABASE_HOST":     os.Getenv("STOREBOARD_DATABASE_HOST"),
		"STOREBOARD_DATABASE_PASSWORD": os.Getenv("STOREBOARD_DATABASE_PASSWORD"),
		"STOREBOARD_DATABASE_DBNAME":   os.Getenv("STOREBOARD_DATABASE_DBNAME"),
		"STOREBOARD_JWT_SECRET":        os.Getenv("STOREBOARD_JWT_SECRET"),
		"STOREBOARD_JWT_EXPIRATION":    os.Getenv("STOREBOARD_JWT_EXPIRATION"),
		"STOREBOARD_CIPHER_KEY":        os.Getenv("STOREBOARD_CIPHER_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	validCipherKey := strings.Repeat("k", 32)

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREBOARD_CIPHER_KEY", validCipherKey)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storeboard-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storeboard", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, "storeboard-backend", cfg.JWT.Issuer)
		assert.Equal(t, 30*time.Second, cfg.Store.RequestTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 100, cfg.HTTP.RateLimitRequests)
		assert.Equal(t, time.Minute, cfg.HTTP.RateLimitWindow)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREBOARD_CIPHER_KEY", validCipherKey)
		os.Setenv("STOREBOARD_APP_PORT", "9090")
		os.Setenv("STOREBOARD_DATABASE_HOST", "db.internal")
		os.Setenv("STOREBOARD_JWT_EXPIRATION", "2h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	})

	t.Run("requires a cipher key in every environment", func(t *testing.T) {
		clearEnv()

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cipher.key is required")
	})

	t.Run("rejects a cipher key that is not 32 bytes", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREBOARD_CIPHER_KEY", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cipher.key must be exactly 32 bytes")
	})

	t.Run("production requires jwt secret and database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREBOARD_CIPHER_KEY", validCipherKey)
		os.Setenv("STOREBOARD_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")

		os.Setenv("STOREBOARD_JWT_SECRET", strings.Repeat("s", 32))
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "storeboard",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
