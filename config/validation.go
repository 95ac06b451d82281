package config

import "fmt"

// ValidateConfig checks that required configuration values are present
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.DBHost == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.DBPort == "" {
		return fmt.Errorf("database port is required")
	}
	if cfg.DBUser == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	// API keys are not validated here. Image generation and web search
	// degrade gracefully when unconfigured; the API entry point decides
	// whether a missing structuring key is fatal.
	return nil
}
