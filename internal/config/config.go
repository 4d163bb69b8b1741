// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	LogFormat   string

	// CopyRowDelay is the fixed pause between association inserts in a
	// copy job. The per-row throttle is what makes copies slow enough to
	// need background execution in the first place.
	CopyRowDelay time.Duration

	// CopyProgressEvery is how many inserted rows pass between progress
	// writes to the operation store.
	CopyProgressEvery int

	// CountCacheTTL bounds the staleness of cached collection totals.
	CountCacheTTL time.Duration

	// CopyRatePerSecond / CopyRateBurst limit copy requests per client IP.
	CopyRatePerSecond float64
	CopyRateBurst     int
}

func Load() (*Config, error) {
	// .env is a development convenience; missing files are fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	var err error
	if cfg.CopyRowDelay, err = getDuration("COPY_ROW_DELAY", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.CopyRowDelay < 0 {
		return nil, fmt.Errorf("COPY_ROW_DELAY must not be negative")
	}

	if cfg.CopyProgressEvery, err = getInt("COPY_PROGRESS_EVERY", 10); err != nil {
		return nil, err
	}
	if cfg.CopyProgressEvery < 1 {
		return nil, fmt.Errorf("COPY_PROGRESS_EVERY must be at least 1")
	}

	if cfg.CountCacheTTL, err = getDuration("COUNT_CACHE_TTL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.CountCacheTTL < 0 {
		return nil, fmt.Errorf("COUNT_CACHE_TTL must not be negative")
	}

	if cfg.CopyRatePerSecond, err = getFloat("COPY_RATE_PER_SECOND", 1); err != nil {
		return nil, err
	}
	if cfg.CopyRatePerSecond <= 0 {
		return nil, fmt.Errorf("COPY_RATE_PER_SECOND must be positive")
	}

	if cfg.CopyRateBurst, err = getInt("COPY_RATE_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.CopyRateBurst < 1 {
		return nil, fmt.Errorf("COPY_RATE_BURST must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 100ms: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
