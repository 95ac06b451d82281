package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// LLM configuration (DeepSeek-compatible chat completions API)
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	// Image generation configuration
	ImageAPIKey string
	ImageAPIURL string

	// Web search configuration
	TavilyAPIKey string

	// S3 bucket for generated recipe images
	S3BucketName string
}

// LoadConfig creates a new Config instance with values from environment variables.
// Secrets may be supplied directly or through *_FILE variables pointing at a file,
// which is how Docker secrets are mounted.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getSecret("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "recipe_creator"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		LLMAPIKey: getSecret("DEEPSEEK_API_KEY", ""),
		LLMAPIURL: getEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		LLMModel:  getEnv("RECIPE_AGENT_MODEL", "deepseek-chat"),

		ImageAPIKey: getSecret("OPENAI_API_KEY", ""),
		ImageAPIURL: getEnv("OPENAI_IMAGES_API_URL", "https://api.openai.com/v1/images/generations"),

		TavilyAPIKey: getSecret("TAVILY_API_KEY", ""),

		S3BucketName: getEnv("S3_BUCKET_NAME", "recipe-creator-images"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads a secret from KEY or from the file named by KEY_FILE
func getSecret(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return fallback
}
