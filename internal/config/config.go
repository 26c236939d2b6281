package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	Port     string
	LogLevel string

	// Market simulation settings
	SimTickInterval time.Duration
	SimSeed         int64

	// HTTP settings
	QuoteCacheTTL    time.Duration
	RateLimitPerSec  int
	RateLimitBurst   int
	ShutdownTimeout  time.Duration
}

// Load reads configuration from environment variables, falling back to a
// .env file when present.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("No .env file found, relying on OS environment variables")
		} else {
			log.Printf("Warning: error loading .env file: %v", err)
		}
	}

	return &AppConfig{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SimTickInterval: getEnvAsDuration("SIM_TICK_INTERVAL", 2*time.Second),
		SimSeed:         getEnvAsInt64("SIM_SEED", time.Now().UnixNano()),
		QuoteCacheTTL:   getEnvAsDuration("QUOTE_CACHE_TTL", 2*time.Second),
		RateLimitPerSec: getEnvAsInt("RATE_LIMIT_PER_SEC", 50),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 100),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsInt64 retrieves an environment variable as an int64 or returns a fallback.
func getEnvAsInt64(key string, fallback int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
