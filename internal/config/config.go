// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strings"
)

// Credential-check modes. Plaintext mirrors the legacy dashboard backend and
// is the default; bcrypt stores and compares salted hashes instead.
const (
	AuthModePlaintext = "plaintext"
	AuthModeBcrypt    = "bcrypt"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable; the .env file (if any) is loaded by main before Load
// runs.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	AuthMode   string // credential check mode: plaintext | bcrypt
	BcryptCost int    // bcrypt cost, only used in bcrypt mode
}

// Load reads configuration from the environment. Required variables are
// enforced by must(); missing values exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:        must("APP_ENV"),
		Port:       must("APP_PORT"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"), // empty allowed
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		AuthMode:   strings.ToLower(getenv("AUTH_MODE", AuthModePlaintext)),
		BcryptCost: atoi(getenv("BCRYPT_COST", "10")),
	}
	if cfg.AuthMode != AuthModePlaintext && cfg.AuthMode != AuthModeBcrypt {
		log.Fatalf("invalid AUTH_MODE: %q (want %s or %s)", cfg.AuthMode, AuthModePlaintext, AuthModeBcrypt)
	}
	return cfg
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
