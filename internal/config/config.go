package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Sessions
	JWTSecret string
	TokenTTL  time.Duration

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Read retry policy
	Retry RetryConfig

	// Optional demo account created at startup outside production
	Seed SeedConfig
}

// RetryConfig holds the knobs of the read retry policy. Writes are never
// retried regardless of these values.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// SeedConfig describes the pre-provisioned demo account
type SeedConfig struct {
	Email    string
	Password string
	Name     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    getDurationEnv("TOKEN_TTL", 24*time.Hour),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:8081"), ","),
		Env:         getEnv("ENV", "development"),
		Retry: RetryConfig{
			MaxAttempts: getIntEnv("RETRY_MAX_ATTEMPTS", 3),
			BaseDelay:   getDurationEnv("RETRY_BASE_DELAY", 100*time.Millisecond),
		},
		Seed: SeedConfig{
			Email:    getEnv("SEED_USER_EMAIL", ""),
			Password: getEnv("SEED_USER_PASSWORD", ""),
			Name:     getEnv("SEED_USER_NAME", "Vitor"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
