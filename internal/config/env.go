package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	AnthropicAPIKey       string
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Optional with defaults
	HTTPPort          int
	ClaudeModels      []string
	ClaudeTemperature float64
	CalendarID        string
	SenderName        string
	ResendAPIKey      string
	ResendFrom        string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		AnthropicAPIKey:       os.Getenv("ANTHROPIC_API_KEY"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),

		// Optional with defaults
		HTTPPort:          getEnvAsIntOrDefault("CONCIERGE_HTTP_PORT", 8080),
		ClaudeModels:      getEnvAsListOrDefault("CONCIERGE_CLAUDE_MODELS", nil),
		ClaudeTemperature: getEnvAsFloatOrDefault("CONCIERGE_CLAUDE_TEMPERATURE", 0.1),
		CalendarID:        getEnvOrDefault("CONCIERGE_CALENDAR_ID", "primary"),
		SenderName:        os.Getenv("CONCIERGE_SENDER_NAME"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		ResendFrom:        os.Getenv("CONCIERGE_RESEND_FROM"),
	}

	return cfg
}

// Validate checks the required credentials before any model call is made.
func (c *Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
