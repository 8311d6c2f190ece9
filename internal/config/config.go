// Package config provides typed access to the pipeline configuration.
// Values come from config.yaml, environment variables, and command-line
// flags, merged by viper in cmd/root.go.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/logger"
)

// Config is the full pipeline configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logger   logger.Config  `mapstructure:"logger"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Geocode  GeocodeConfig  `mapstructure:"geocode"`
	Database DatabaseConfig `mapstructure:"database"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// PathsConfig holds the file locations the pipeline stages read and write.
type PathsConfig struct {
	// RawListings is the NDJSON file produced by the crawler.
	RawListings string `mapstructure:"raw_listings"`
	// TransformedListings is the cleaned CSV output of the transform stage.
	TransformedListings string `mapstructure:"transformed_listings"`
	// GeocodeCache is the postal-code enrichment cache CSV.
	GeocodeCache string `mapstructure:"geocode_cache"`
}

// GeocodeConfig holds postal-code API settings.
type GeocodeConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ScheduleConfig holds the cron expression for repeated pipeline runs.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

// Load unmarshals the merged viper state into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings every stage depends on.
func (c *Config) Validate() error {
	if c.Paths.RawListings == "" {
		return errors.New("paths.raw_listings is required")
	}
	if c.Paths.TransformedListings == "" {
		return errors.New("paths.transformed_listings is required")
	}
	if c.Geocode.Enabled && c.Geocode.BaseURL == "" {
		return errors.New("geocode.base_url is required when geocoding is enabled")
	}
	return nil
}
