// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config represents the application configuration
type Config struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Random seed for imputation draws; 0 means use the process-wide source
	Seed uint64

	// Box-Cox defaults
	BoxCoxLowerLimit float64
	BoxCoxUpperLimit float64
	BoxCoxMinUnique  int
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is honored when present.
func LoadConfig() (*Config, error) {
	// missing .env is fine; the environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		Seed:             uint64(getEnvAsInt("PREPLINE_SEED", 0)),
		BoxCoxLowerLimit: getEnvAsFloat("BOXCOX_LOWER_LIMIT", -5),
		BoxCoxUpperLimit: getEnvAsFloat("BOXCOX_UPPER_LIMIT", 5),
		BoxCoxMinUnique:  getEnvAsInt("BOXCOX_MIN_UNIQUE", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.BoxCoxLowerLimit >= c.BoxCoxUpperLimit {
		return errors.New("box-cox lower limit must be below upper limit")
	}
	if c.BoxCoxMinUnique <= 0 {
		return errors.New("box-cox minimum unique count must be positive")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.New("log format must be json or console")
	}
	return nil
}

// BuildLogger constructs a zap logger matching the configured level and
// format.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, errors.New("invalid log level: " + c.LogLevel)
	}

	var zcfg zap.Config
	if c.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level
	return zcfg.Build()
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
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
