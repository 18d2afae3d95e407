package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for game sessions.
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	LogFile     string
	RedisURL    string
	Storage     string
	SessionTTL  time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when one exists; variables that are
// already set take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive, got %s", ttl)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     os.Getenv("LOG_FILE"),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		Storage:     strings.ToLower(getEnv("STORAGE", StorageRedis)),
		SessionTTL:  ttl,
	}

	switch cfg.Storage {
	case StorageRedis, StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE %q: supported values are %q and %q", cfg.Storage, StorageRedis, StorageMemory)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
