package common

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Image    ServiceConfig
	Document ServiceConfig
	Classify ServiceConfig
	Taxonomy TaxonomyConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr  string
	AuthToken string
}

// ServiceConfig holds the endpoint configuration for one external service.
type ServiceConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// TaxonomyConfig points at an optional YAML file overriding the built-in
// entry-type and category lists.
type TaxonomyConfig struct {
	Path string
}

// LoadConfig loads configuration from the environment. A .env file in the
// working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
			AuthToken: getEnv("AUTH_TOKEN", ""),
		},
		Image: ServiceConfig{
			URL:     getEnv("IMAGE_EXTRACTOR_URL", ""),
			APIKey:  getEnv("IMAGE_EXTRACTOR_API_KEY", ""),
			Timeout: getEnvAsDuration("IMAGE_EXTRACTOR_TIMEOUT", 30*time.Second),
		},
		Document: ServiceConfig{
			URL:     getEnv("DOCUMENT_EXTRACTOR_URL", ""),
			APIKey:  getEnv("DOCUMENT_EXTRACTOR_API_KEY", ""),
			Timeout: getEnvAsDuration("DOCUMENT_EXTRACTOR_TIMEOUT", 45*time.Second),
		},
		Classify: ServiceConfig{
			URL:     getEnv("CLASSIFIER_URL", ""),
			APIKey:  getEnv("CLASSIFIER_API_KEY", ""),
			Timeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 15*time.Second),
		},
		Taxonomy: TaxonomyConfig{
			Path: getEnv("TAXONOMY_FILE", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Image.URL == "" {
		return NewAppError("CONFIG_ERROR", "IMAGE_EXTRACTOR_URL is required", nil)
	}
	if c.Document.URL == "" {
		return NewAppError("CONFIG_ERROR", "DOCUMENT_EXTRACTOR_URL is required", nil)
	}
	if c.Classify.URL == "" {
		return NewAppError("CONFIG_ERROR", "CLASSIFIER_URL is required", nil)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", nil)
	}
	return nil
}
