package config

import (
	"os"
	"strconv"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Data     DataConfig
	Server   ServerConfig
}

// DatabaseConfig holds the SQLite store settings
type DatabaseConfig struct {
	Path      string
	TableName string
}

// DataConfig holds source-file settings for the ingestion pipeline
type DataConfig struct {
	// SourceBase is the data file path without extension. Ingestion tries
	// "<SourceBase>.xlsx" first and falls back to "<SourceBase>.csv".
	SourceBase string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			Path:      getEnvOrDefault("DB_PATH", "investment_data_careful.db"),
			TableName: getEnvOrDefault("TABLE_NAME", "investment_projects"),
		},
		Data: DataConfig{
			SourceBase: getEnvOrDefault("DATA_FILE", "Anushka - Intern Assignment-Data"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.Path == "" {
		return errors.ConfigInvalid("database path is required")
	}
	if config.Database.TableName == "" {
		return errors.ConfigInvalid("table name is required")
	}
	if config.Data.SourceBase == "" {
		return errors.ConfigInvalid("data file base name is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
