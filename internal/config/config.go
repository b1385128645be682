// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CatalogPath is the destination catalog JSON file.
	CatalogPath string

	// StoreBackend selects where per-user data is kept: memory, postgres or redis.
	StoreBackend string

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// RedisURL is the Redis connection URL. Required for redis.
	RedisURL string

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64

	// SessionIdleTTL is how long a session lives without requests.
	// Defaults to 24h.
	SessionIdleTTL time.Duration
}

// env mirrors the raw variables. Defaults apply only to unset variables;
// a variable set to "" is read as "" and normalised by Load.
type env struct {
	Port         string `envconfig:"PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins  string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	CatalogPath  string `envconfig:"CATALOG_PATH" default:"data/destinations.json"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	RedisURL     string `envconfig:"REDIS_URL"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"24h"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every problem found: an unknown store backend and
// any variables the chosen backend requires but are not set.
func Load() (Config, error) {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	cfg := Config{
		Port:           orDefault(e.Port, "8080"),
		LogLevel:       orDefault(e.LogLevel, "info"),
		CORSOrigins:    splitCSV(orDefault(e.CORSOrigins, "http://localhost:5173")),
		CatalogPath:    orDefault(e.CatalogPath, "data/destinations.json"),
		StoreBackend:   strings.ToLower(orDefault(e.StoreBackend, BackendMemory)),
		DatabaseURL:    strings.TrimSpace(e.DatabaseURL),
		RedisURL:       strings.TrimSpace(e.RedisURL),
		MaxBodyBytes:   e.MaxBodyBytes,
		SessionIdleTTL: e.SessionIdleTTL,
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = 24 * time.Hour
	}

	var problems, missing []string
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND must be one of memory, postgres, redis (got %q)", cfg.StoreBackend))
	}
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config.Load: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// orDefault returns the trimmed value, or fallback when it is blank.
func orDefault(v, fallback string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
