// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// Report parameters
	EndPeriod string // Cutoff month label for period summaries
	Group     string // Department label to filter reports by

	// Split parameters
	Fraction float64 // Training fraction in (0,1)
	Seed     int64   // PRNG seed for the reproducible split

	// Optional Postgres DSN for the cleaning-operation audit trail.
	// Empty disables persistence; cleaning still runs.
	AuditDatabaseURL string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from the environment, reading a .env
// file first when one is present
func LoadConfig() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply
	_ = godotenv.Load()

	cfg := &Config{
		EndPeriod:        getEnv("END_PERIOD", "August"),
		Group:            getEnv("REPORT_GROUP", "Major Gifts"),
		Fraction:         getEnvAsFloat("SPLIT_FRACTION", 0.8),
		Seed:             getEnvAsInt64("SPLIT_SEED", 2020),
		AuditDatabaseURL: getEnv("AUDIT_DATABASE_URL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.EndPeriod == "" {
		return errors.New("end period cannot be empty")
	}

	if c.Fraction <= 0 || c.Fraction >= 1 {
		return errors.New("split fraction must be in the open interval (0,1)")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
