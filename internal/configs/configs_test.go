package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:tasks.db")
	t.Setenv("DATABASE_DRIVER_NAME", "SQLite")
	t.Setenv("DATABASE_USER", "tasks")
	t.Setenv("DATABASE_PASSWORD", "")
}

func TestLoad_Defaults(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppURL != "0.0.0.0:8080" {
		t.Errorf("expected default app url, got %q", cfg.AppURL)
	}
	if cfg.Database.DriverName != "sqlite" {
		t.Errorf("expected normalized driver name, got %q", cfg.Database.DriverName)
	}
	if cfg.Database.ConnMaxLifetime != 300*time.Second {
		t.Errorf("unexpected conn max lifetime %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.RateLimit != 0 || cfg.RedisAddr != "" {
		t.Errorf("rate limiting should be off by default, got limit=%d redis=%q", cfg.RateLimit, cfg.RedisAddr)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("expected auto migrate on by default")
	}
}

func TestLoad_MissingDatabaseKeys(t *testing.T) {
	setDatabaseEnv(t)
	unsetEnv(t, "DATABASE_USER")
	unsetEnv(t, "DATABASE_PASSWORD")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing keys")
	}
	for _, key := range []string{"DATABASE_USER", "DATABASE_PASSWORD"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to mention %s, got %v", key, err)
		}
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "many")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_MAX_OPEN_CONNS") {
		t.Fatalf("expected invalid integer error, got %v", err)
	}
}

func TestLoad_RedisAndLogLevel(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("DATABASE_LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_LOG_LEVEL") {
		t.Fatalf("expected log level error, got %v", err)
	}

	t.Setenv("DATABASE_LOG_LEVEL", "INFO")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("expected redis addr cache:6379, got %q", cfg.RedisAddr)
	}
	if cfg.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.RateLimit)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.TrustedProxies) != 2 {
		t.Fatalf("expected 2 trusted ranges, got %v", cfg.TrustedProxies)
	}
	if cfg.TrustedProxies[1].String() != "192.0.2.7/32" {
		t.Errorf("bare ip should become a /32, got %s", cfg.TrustedProxies[1])
	}

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/99")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "TRUSTED_PROXIES") {
		t.Errorf("expected invalid CIDR error, got %v", err)
	}
}
