package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"COSECHA_APP_NAME":          os.Getenv("COSECHA_APP_NAME"),
		"COSECHA_APP_ENV":           os.Getenv("COSECHA_APP_ENV"),
		"COSECHA_APP_PORT":          os.Getenv("COSECHA_APP_PORT"),
		"COSECHA_DATABASE_HOST":     os.Getenv("COSECHA_DATABASE_HOST"),
		"COSECHA_DATABASE_PORT":     os.Getenv("COSECHA_DATABASE_PORT"),
		"COSECHA_DATABASE_USER":     os.Getenv("COSECHA_DATABASE_USER"),
		"COSECHA_DATABASE_PASSWORD": os.Getenv("COSECHA_DATABASE_PASSWORD"),
		"COSECHA_DATABASE_DBNAME":   os.Getenv("COSECHA_DATABASE_DBNAME"),
		"COSECHA_DATABASE_SSLMODE":  os.Getenv("COSECHA_DATABASE_SSLMODE"),
		"COSECHA_JWT_SECRET":        os.Getenv("COSECHA_JWT_SECRET"),
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

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "cosecha-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "cosecha", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("loads values from environment variables with COSECHA prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("COSECHA_APP_NAME", "test-app")
		os.Setenv("COSECHA_APP_PORT", "9000")
		os.Setenv("COSECHA_DATABASE_HOST", "testdb.local")
		os.Setenv("COSECHA_DATABASE_PORT", "5433")
		os.Setenv("COSECHA_DATABASE_USER", "testuser")
		os.Setenv("COSECHA_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("COSECHA_APP_ENV", "production")
		os.Setenv("COSECHA_DATABASE_PASSWORD", "secret")
		os.Setenv("COSECHA_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")

		os.Setenv("COSECHA_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("production rejects disabled ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("COSECHA_APP_ENV", "production")
		os.Setenv("COSECHA_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("COSECHA_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "cosecha",
		Password: "p@ss/word",
		DBName:   "cosecha",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
