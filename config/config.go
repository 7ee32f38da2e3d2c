package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DatabaseURL string // PostgreSQL connection string
	JWTSecret   string // secret used to verify bearer tokens
}

// Load reads configuration from the environment, consulting a .env file when
// one is present. Missing required variables abort the process.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:         envOr("APP_ENV", "dev"),
		Port:        envOr("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   must("JWT_SECRET"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
