package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public GitHub REST API endpoint
	DefaultBaseURL = "https://api.github.com"
	// DefaultOutputPath is the HTML report written when no output is given
	DefaultOutputPath = "github_repo_details.html"
	// DefaultWorkers is the width of the per-organization worker pool
	DefaultWorkers = 10
)

// Config holds the application configuration
type Config struct {
	// GitHub
	GitHubToken string
	BaseURL     string

	// Report
	OutputPath string
	Workers    int

	// Storage
	StorageType string // "none", "sqlite" or "postgres"
	SQLitePath  string
	PostgresURL string

	// API Server
	APIPort string
	APIHost string

	// CLI
	APIEndpoint string
	LogLevel    string
}

// Load loads the configuration from environment variables.
// Files are read with godotenv first; variables already set take precedence.
func Load(files ...string) (*Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, &ConfigError{Field: "config", Message: err.Error()}
		}
	} else {
		// Load .env file if it exists (ignore error if not found)
		_ = godotenv.Load()
	}

	workers, err := getEnvInt("WORKERS", DefaultWorkers)
	if err != nil {
		return nil, err
	}

	return &Config{
		GitHubToken: getEnv("GITHUB_TOKEN", ""),
		BaseURL:     getEnv("GITHUB_BASE_URL", DefaultBaseURL),
		OutputPath:  getEnv("OUTPUT_PATH", DefaultOutputPath),
		Workers:     workers,
		StorageType: getEnv("STORAGE_TYPE", "none"),
		SQLitePath:  getEnv("SQLITE_PATH", "./inventory.db"),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		APIPort:     getEnv("API_PORT", "8080"),
		APIHost:     getEnv("API_HOST", "localhost"),
		APIEndpoint: getEnv("API_ENDPOINT", "http://localhost:8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

// Validate validates the configuration needed to collect an inventory
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return &ConfigError{Field: "pat_token", Message: "GitHub personal access token is required"}
	}
	if c.BaseURL == "" {
		return &ConfigError{Field: "base_url", Message: "must not be empty"}
	}
	if c.OutputPath == "" {
		return &ConfigError{Field: "output", Message: "must not be empty"}
	}
	if c.Workers < 1 {
		return &ConfigError{Field: "workers", Message: "must be at least 1"}
	}
	return c.ValidateStorage()
}

// ValidateStorage validates the storage settings only
func (c *Config) ValidateStorage() error {
	switch c.StorageType {
	case "none", "sqlite":
	case "postgres":
		if c.PostgresURL == "" {
			return &ConfigError{Field: "POSTGRES_URL", Message: "PostgreSQL URL is required when STORAGE_TYPE is 'postgres'"}
		}
	default:
		return &ConfigError{Field: "STORAGE_TYPE", Message: "must be 'none', 'sqlite' or 'postgres'"}
	}
	return nil
}

// StorageEnabled reports whether inventories are persisted
func (c *Config) StorageEnabled() bool {
	return c.StorageType == "sqlite" || c.StorageType == "postgres"
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
