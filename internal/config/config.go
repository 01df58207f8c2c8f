// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file

	// Authentication
	APIKey string // required to create or delete saved locations

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text

	// Calculation defaults
	DefaultAyanamsa   string // lahiri, fagan_bradley, raman
	DefaultTimeZone   string // IANA name used when a request has none
	SearchHorizonDays int    // forward search window for observances
	MaxHorizonDays    int    // upper bound a client may ask for
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Missing .env is fine; production sets the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		Env:               getEnv("ENV", EnvDevelopment),
		DatabasePath:      getEnv("DATABASE_PATH", "./data/panchanga.db"),
		APIKey:            getEnv("API_KEY", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		DefaultAyanamsa:   getEnv("DEFAULT_AYANAMSA", "lahiri"),
		DefaultTimeZone:   getEnv("DEFAULT_TIMEZONE", "Asia/Kolkata"),
		SearchHorizonDays: getEnvInt("SEARCH_HORIZON_DAYS", 60),
		MaxHorizonDays:    getEnvInt("MAX_HORIZON_DAYS", 366),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
// Every problem is reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// Development may run without a key; location writes are then open.
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if _, err := astro.ParseAyanamsa(c.DefaultAyanamsa); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_AYANAMSA: %w", err))
	}
	if _, err := astro.LoadZone(c.DefaultTimeZone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE: %w", err))
	}

	if c.MaxHorizonDays < 1 {
		errs = append(errs, fmt.Errorf("MAX_HORIZON_DAYS must be positive, got %d", c.MaxHorizonDays))
	}
	if c.SearchHorizonDays < 1 || c.SearchHorizonDays > c.MaxHorizonDays {
		errs = append(errs, fmt.Errorf("SEARCH_HORIZON_DAYS must be between 1 and MAX_HORIZON_DAYS (%d), got %d",
			c.MaxHorizonDays, c.SearchHorizonDays))
	}

	return errors.Join(errs...)
}

// Ayanamsa returns the parsed default ayanamsa. Validate has already
// rejected unknown names, so Lahiri is returned only for a zero Config.
func (c *Config) Ayanamsa() astro.Ayanamsa {
	a, err := astro.ParseAyanamsa(c.DefaultAyanamsa)
	if err != nil {
		return astro.Lahiri
	}
	return a
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default
// fallback. Unparseable values fall back too.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
