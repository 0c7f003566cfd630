package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("ADMIN_API_KEY", "key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.StorageBackend)
	}
	if cfg.HTTPPort != "8080" || cfg.AdminLogin != "admin" || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.RateLimitBackend != BackendMemory {
		t.Fatalf("expected in-memory rate limiting without redis, got %q", cfg.RateLimitBackend)
	}
}

func TestLoadBackendRequirements(t *testing.T) {
	cases := []struct {
		backend string
		missing string
	}{
		{backend: "postgres", missing: "DATABASE_URL"},
		{backend: "redis", missing: "REDIS_URL"},
		{backend: "mongo", missing: "MONGO_URI"},
	}
	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			setRequired(t)
			t.Setenv("STORAGE_BACKEND", tc.backend)
			t.Setenv("DATABASE_URL", "")
			t.Setenv("REDIS_URL", "")
			t.Setenv("MONGO_URI", "")

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.missing) {
				t.Fatalf("expected missing %s, got %v", tc.missing, err)
			}
		})
	}
}

func TestLoadPostgresAliasAndRedisLimiter(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_BACKEND", "PostgreSQL")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobmatch")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DB_CONN_MAX_IDLE", "90s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageBackend != BackendPostgres {
		t.Fatalf("expected postgres alias, got %q", cfg.StorageBackend)
	}
	if cfg.RateLimitBackend != BackendRedis {
		t.Fatalf("expected redis rate limiting, got %q", cfg.RateLimitBackend)
	}
	if cfg.DBConnMaxIdle != 90*time.Second {
		t.Fatalf("expected parsed duration, got %v", cfg.DBConnMaxIdle)
	}
	if cfg.DBMaxOpenConns != 10 {
		t.Fatalf("invalid ints fall back to the default, got %d", cfg.DBMaxOpenConns)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORAGE_BACKEND", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown backend")
		}
	})
	t.Run("missing admin secrets", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("ADMIN_PASSWORD", "")
		t.Setenv("ADMIN_API_KEY", "")
		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD") || !strings.Contains(err.Error(), "ADMIN_API_KEY") {
			t.Fatalf("expected both admin vars reported, got %v", err)
		}
	})
	t.Run("non-positive rate", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORAGE_BACKEND", "memory")
		t.Setenv("BULK_DELETE_PER_MIN", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero rate")
		}
	})
}
