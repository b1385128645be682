package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecotrip/internal/config"
)

var allVars = []string{
	"PORT", "LOG_LEVEL", "CORS_ORIGINS", "CATALOG_PATH", "STORE_BACKEND",
	"DATABASE_URL", "REDIS_URL", "MAX_BODY_BYTES", "SESSION_IDLE_TTL",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

// TestLoad_defaults verifies that every variable falls back to its default
// and that the in-memory backend needs nothing else.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, "data/destinations.json", cfg.CatalogPath)
	require.Equal(t, config.BackendMemory, cfg.StoreBackend)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
}

// TestLoad_blankValuesUseDefaults verifies that variables set to "" behave
// like unset ones.
func TestLoad_blankValuesUseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", " ")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("CATALOG_PATH", "/srv/catalog.json")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/ecotrip")
	t.Setenv("MAX_BODY_BYTES", "4096")
	t.Setenv("SESSION_IDLE_TTL", "90m")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "/srv/catalog.json", cfg.CatalogPath)
	require.Equal(t, config.BackendPostgres, cfg.StoreBackend)
	require.Equal(t, "postgres://user:pass@db:5432/ecotrip", cfg.DatabaseURL)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
	require.Equal(t, 90*time.Minute, cfg.SessionIdleTTL)
}

func TestLoad_redis(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, config.BackendRedis, cfg.StoreBackend)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

// TestLoad_missingRequired verifies that the chosen backend's connection
// variable is required and named in the error.
func TestLoad_missingRequired(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"postgres", "DATABASE_URL"},
		{"redis", "REDIS_URL"},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORE_BACKEND", tc.backend)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad_unknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "dynamo")

	_, err := config.Load()

	require.ErrorContains(t, err, `STORE_BACKEND must be one of memory, postgres, redis (got "dynamo")`)
}

func TestLoad_invalidNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_BODY_BYTES", "lots")

	_, err := config.Load()

	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}
