package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"methodcost/domain/core"
	"methodcost/internal/errors"

	"github.com/google/uuid"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Analysis AnalysisConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port          string
	DefaultUserID uuid.UUID
	MaxUploadMB   int
}

// DataConfig holds data import settings
type DataConfig struct {
	// ProjectsFile is an optional xlsx/csv portfolio imported at startup
	ProjectsFile string
}

// AnalysisConfig holds analysis run settings
type AnalysisConfig struct {
	SaveTimeout time.Duration
}

// Load reads configuration from environment variables and validates it.
// A database URL is required; LoadOffline is for tools that run without one.
func Load() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}
	if config.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	return config, nil
}

// LoadOffline reads the configuration without requiring DATABASE_URL
func LoadOffline() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	userID, err := core.ParseUserID(os.Getenv("DEFAULT_USER_ID"))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load server configuration")
	}

	config := &Config{
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "8080"),
			DefaultUserID: userID,
			MaxUploadMB:   getEnvIntOrDefault("MAX_UPLOAD_MB", 10),
		},
		Data: DataConfig{
			ProjectsFile: getEnvOrDefault("PROJECTS_FILE", ""),
		},
		Analysis: AnalysisConfig{
			SaveTimeout: getEnvDurationOrDefault("ANALYSIS_SAVE_TIMEOUT", 5*time.Second),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Analysis.SaveTimeout <= 0 {
		return errors.ConfigInvalid("ANALYSIS_SAVE_TIMEOUT must be positive")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if f := config.Data.ProjectsFile; f != "" {
		switch strings.ToLower(filepath.Ext(f)) {
		case ".xlsx", ".csv":
		default:
			return errors.ConfigInvalid("PROJECTS_FILE must be an .xlsx or .csv file")
		}
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
