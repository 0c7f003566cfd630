package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

type Config struct {
	HTTPPort         string
	LogLevel         string
	StorageBackend   string
	PostgresDSN      string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBConnMaxIdle    time.Duration
	DBConnMaxLife    time.Duration
	RedisURL         string
	RedisKeyPrefix   string
	MongoURI         string
	MongoDatabase    string
	AdminLogin       string
	AdminPassword    string
	AdminAPIKey      string
	RequestTimeout   time.Duration
	BulkDeletePerMin int
	RateLimitBackend string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		PostgresDSN:      getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:   getInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:   getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdle:    getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:    getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisKeyPrefix:   getEnv("REDIS_KEY_PREFIX", "jobmatch"),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "jobmatch"),
		AdminLogin:       getEnv("ADMIN_LOGIN", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AdminAPIKey:      getEnv("ADMIN_API_KEY", ""),
		RequestTimeout:   getDuration("REQUEST_TIMEOUT", 10*time.Second),
		BulkDeletePerMin: getInt("BULK_DELETE_PER_MIN", 10),
	}
	if cfg.StorageBackend == "postgresql" || cfg.StorageBackend == "pq" {
		cfg.StorageBackend = BackendPostgres
	}
	// Redis doubles as the rate limit store whenever it is configured.
	cfg.RateLimitBackend = BackendMemory
	if cfg.RedisURL != "" {
		cfg.RateLimitBackend = BackendRedis
	}

	missing := make([]string, 0, 3)
	switch cfg.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	case BackendMongo:
		if cfg.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	if cfg.AdminAPIKey == "" {
		missing = append(missing, "ADMIN_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.BulkDeletePerMin <= 0 {
		return nil, fmt.Errorf("BULK_DELETE_PER_MIN must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}
