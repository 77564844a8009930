package config

import (
	"errors"
	"os"
)

// app config, mostly AI provider and persistence related
type Config struct {
	Provider string

	// StoreEnabled disables the durable interview store entirely when false;
	// the service then hands out mock session ids and skips persistence.
	StoreEnabled bool

	ExportSchedule string
	ExportDir      string
	ExportEnabled  bool
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:       getEnvOrDefault("AI_PROVIDER", "gemini"),
		StoreEnabled:   getEnvOrDefault("STORE_ENABLED", "true") == "true",
		ExportSchedule: getEnvOrDefault("EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:      getEnvOrDefault("EXPORT_DIR", "./exports"),
		ExportEnabled:  getEnvOrDefault("EXPORT_ENABLED", "false") == "true",
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
