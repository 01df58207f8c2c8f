package config

import (
	"os"
	"strings"
	"testing"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DatabasePath != "./data/panchanga.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.DefaultAyanamsa != "lahiri" || cfg.Ayanamsa() != astro.Lahiri {
		t.Errorf("DefaultAyanamsa = %q, want lahiri", cfg.DefaultAyanamsa)
	}
	if cfg.DefaultTimeZone != "Asia/Kolkata" {
		t.Errorf("DefaultTimeZone = %q, want Asia/Kolkata", cfg.DefaultTimeZone)
	}
	if cfg.SearchHorizonDays != 60 || cfg.MaxHorizonDays != 366 {
		t.Errorf("horizons = %d/%d, want 60/366", cfg.SearchHorizonDays, cfg.MaxHorizonDays)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_PATH", "/data/test.db")
	t.Setenv("API_KEY", "secret-key-123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DEFAULT_AYANAMSA", "raman")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/London")
	t.Setenv("SEARCH_HORIZON_DAYS", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("logging = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Ayanamsa() != astro.Raman {
		t.Errorf("Ayanamsa() = %v, want raman", cfg.Ayanamsa())
	}
	if cfg.DefaultTimeZone != "Europe/London" {
		t.Errorf("DefaultTimeZone = %q", cfg.DefaultTimeZone)
	}
	if cfg.SearchHorizonDays != 90 {
		t.Errorf("SearchHorizonDays = %d, want 90", cfg.SearchHorizonDays)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("DEFAULT_AYANAMSA", "vedic")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with invalid settings")
	}
	// Both problems are reported together.
	for _, want := range []string{"LOG_FORMAT", "DEFAULT_AYANAMSA"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func validConfig() Config {
	return Config{
		Port:              8080,
		Env:               EnvDevelopment,
		DatabasePath:      "./data/test.db",
		LogLevel:          "info",
		LogFormat:         "text",
		DefaultAyanamsa:   "lahiri",
		DefaultTimeZone:   "Asia/Kolkata",
		SearchHorizonDays: 60,
		MaxHorizonDays:    366,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"valid production config", func(c *Config) {
			c.Env = EnvProduction
			c.APIKey = "required-in-prod"
		}, false},
		{"production requires API key", func(c *Config) { c.Env = EnvProduction }, true},
		{"invalid port - too low", func(c *Config) { c.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Port = 70000 }, true},
		{"invalid environment", func(c *Config) { c.Env = "invalid" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"unknown ayanamsa", func(c *Config) { c.DefaultAyanamsa = "vedic" }, true},
		{"ayanamsa alias", func(c *Config) { c.DefaultAyanamsa = "Fagan-Bradley" }, false},
		{"unknown timezone", func(c *Config) { c.DefaultTimeZone = "Mars/Olympus" }, true},
		{"host timezone", func(c *Config) { c.DefaultTimeZone = "Local" }, true},
		{"zero horizon", func(c *Config) { c.SearchHorizonDays = 0 }, true},
		{"horizon above max", func(c *Config) { c.SearchHorizonDays = 400 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT",
		"DEFAULT_AYANAMSA", "DEFAULT_TIMEZONE",
		"SEARCH_HORIZON_DAYS", "MAX_HORIZON_DAYS",
	}
	for _, v := range vars {
		// t.Setenv restores the original value after the test.
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}
