package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config holds all runtime settings, sourced from the environment. A .env
// file in the working directory is honored when present.
type Config struct {
	Environment string
	HTTPAddr    string

	// DatabaseDriver selects the storage backend: "sqlite" or "postgres".
	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret  string
	SessionTTL time.Duration

	Bootstrap Bootstrap
}

// Bootstrap controls first-boot seeding.
type Bootstrap struct {
	EnsureDefaultAdmin bool
	AdminEmail         string
	AdminPassword      string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:    envOr("NETDESK_ENV", "development"),
		HTTPAddr:       envOr("NETDESK_HTTP_ADDR", ":8080"),
		DatabaseDriver: envOr("NETDESK_DB_DRIVER", "sqlite"),
		DatabaseDSN:    envOr("NETDESK_DB_DSN", "netdesk.db"),
		JWTSecret:      envOr("NETDESK_JWT_SECRET", "dev-secret-change-me"),
		SessionTTL:     envDurationOr("NETDESK_SESSION_TTL", 12*time.Hour),
		Bootstrap: Bootstrap{
			EnsureDefaultAdmin: envBoolOr("NETDESK_BOOTSTRAP_ADMIN", true),
			AdminEmail:         envOr("NETDESK_ADMIN_EMAIL", "admin@netdesk.local"),
			AdminPassword:      envOr("NETDESK_ADMIN_PASSWORD", "admin"),
		},
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
