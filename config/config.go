package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port        string
	Version     string
	HTTPTimeout time.Duration
	CORS        CORSConfig
	Groq        GroqConfig
	SMTP        SMTPConfig
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// GroqConfig holds the upstream generation API configuration
type GroqConfig struct {
	APIURL    string
	ModelsURL string
	Model     string
}

// SMTPConfig holds default SMTP server settings used when a send
// request does not specify its own server/port
type SMTPConfig struct {
	DefaultServer string
	DefaultPort   int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		Version:     getEnv("VERSION", "1.0.0"),
		HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		CORS: CORSConfig{
			AllowedOrigins:   getEnvSlice("CORS_ORIGINS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
		},
		Groq: GroqConfig{
			APIURL:    getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
			ModelsURL: getEnv("GROQ_MODELS_URL", "https://api.groq.com/openai/v1/models"),
			Model:     getEnv("GROQ_MODEL", "llama3-8b-8192"),
		},
		SMTP: SMTPConfig{
			DefaultServer: getEnv("SMTP_DEFAULT_SERVER", "smtp.gmail.com"),
			DefaultPort:   getEnvAsInt("SMTP_DEFAULT_PORT", 587),
		},
	}

	return cfg, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		values := strings.Split(value, ",")
		for i, v := range values {
			values[i] = strings.TrimSpace(v)
		}
		return values
	}
	return defaultValue
}
