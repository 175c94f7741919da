// Package config provides configuration management for the OAIF ledger.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Store StoreConfig
	Debug bool
}

// StoreConfig represents OAIF store configuration.
type StoreConfig struct {
	Root         string // directory holding the books
	Path         string // explicit store file path (optional)
	ChartPath    string // chart-of-accounts seed file (optional)
	CompanyName  string
	BaseCurrency string
	SourceSystem string
	CreatedBy    string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Store: StoreConfig{
			Root:         getEnvOrDefault("OAIF_ROOT", "."),
			Path:         os.Getenv("OAIF_STORE_PATH"),
			ChartPath:    os.Getenv("OAIF_CHART_PATH"),
			CompanyName:  os.Getenv("OAIF_COMPANY_NAME"),
			BaseCurrency: getEnvOrDefault("OAIF_BASE_CURRENCY", "USD"),
			SourceSystem: getEnvOrDefault("OAIF_SOURCE_SYSTEM", "oaif-ledger"),
			CreatedBy:    getEnvOrDefault("OAIF_CREATED_BY", "oaif-ledger"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, field := range required {
		var value string
		switch field {
		case "root":
			value = c.Store.Root
		case "path":
			value = c.Store.Path
		case "chartPath":
			value = c.Store.ChartPath
		case "companyName":
			value = c.Store.CompanyName
		case "baseCurrency":
			value = c.Store.BaseCurrency
		case "sourceSystem":
			value = c.Store.SourceSystem
		case "createdBy":
			value = c.Store.CreatedBy
		}

		if value == "" {
			missing = append(missing, "store."+field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
