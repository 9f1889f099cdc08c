package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreNoop   = "noop"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Snapshot store
	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SnapshotTTL   time.Duration
	StoreTimeout  time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration

	// Rate limiting, per client IP
	RateLimitCapacity int
	RateLimitRefill   time.Duration

	// Optional YAML file replacing the embedded default input records.
	DefaultsFile string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend:  getEnv("STORE_BACKEND", StoreMemory),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SnapshotTTL:   getEnvDuration("SNAPSHOT_TTL", 30*24*time.Hour),
		StoreTimeout:  getEnvDuration("STORE_TIMEOUT", 2*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 50*time.Millisecond),

		RateLimitCapacity: getEnvInt("RATE_LIMIT_CAPACITY", 60),
		RateLimitRefill:   getEnvDuration("RATE_LIMIT_REFILL", time.Minute),

		DefaultsFile: getEnv("DEFAULTS_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
