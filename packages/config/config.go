// Package config
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL  string
	RequestDelay time.Duration
	FetchTimeout time.Duration
	// Logging configuration
	LogFile  string
	LogLevel string
	// Optional Redis seen-URL cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SeenKeyPrefix string
	SeenTTL       time.Duration
	// Optional Prometheus exposition
	MetricsAddr string
}

func Load() (Config, error) {
	cfg := Config{}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("missing required environment variable: DATABASE_URL")
	}

	var err error
	cfg.RequestDelay, err = time.ParseDuration(getEnv("REQUEST_DELAY", "1s"))
	if err != nil {
		slog.Warn("Invalid REQUEST_DELAY", "value", getEnv("REQUEST_DELAY", "1s"), "error", err)
		cfg.RequestDelay = time.Second
	}

	// Zero means no timeout on page fetches; a hung remote can stall
	// the batch. That matches the original tool and stays the default.
	cfg.FetchTimeout, _ = time.ParseDuration(getEnv("FETCH_TIMEOUT", "0"))

	cfg.LogFile = getEnv("LOG_FILE", "logs/ingest.log")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, _ = strconv.Atoi(getEnv("REDIS_DB", "0"))
	cfg.SeenKeyPrefix = getEnv("SEEN_KEY_PREFIX", "catalog:seen:")
	cfg.SeenTTL, _ = time.ParseDuration(getEnv("SEEN_TTL", "720h"))

	cfg.MetricsAddr = getEnv("METRICS_ADDR", "")

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
