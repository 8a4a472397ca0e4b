package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "COURTSIDE_"

// parseEnv overlays cfg with COURTSIDE_* environment variables. envFile, when
// it exists, is loaded first without overriding variables already set.
// Malformed numeric or duration values are ignored.
func parseEnv(cfg *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: cannot load %s: %v", envFile, err)
		}
	}

	cfg.ServerOrigin = envString("SERVER_ORIGIN", cfg.ServerOrigin)
	cfg.APIBasePath = envString("API_BASE_PATH", cfg.APIBasePath)
	cfg.RequestTimeout = envDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.DBPath = envString("DB_PATH", cfg.DBPath)
	cfg.RateLimit = envFloat("RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = envInt("RATE_BURST", cfg.RateBurst)
	cfg.RenewSkew = envDuration("RENEW_SKEW", cfg.RenewSkew)
	cfg.BulkConcurrency = envInt("BULK_CONCURRENCY", cfg.BulkConcurrency)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
}

func envString(key, def string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(envPrefix + key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(envPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
