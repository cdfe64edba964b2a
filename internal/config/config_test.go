package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	secret := strings.Repeat("s", MinSessionSecretLength)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SESSION_SECRET", secret)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.DBPath != "./data/portfolio.db" {
			t.Errorf("DBPath = %q, want default", cfg.DBPath)
		}
		if cfg.ServerAddr() != "localhost:8080" {
			t.Errorf("ServerAddr() = %q, want localhost:8080", cfg.ServerAddr())
		}
		if !cfg.IsDevelopment() {
			t.Error("IsDevelopment() = false, want true by default")
		}
		if cfg.UseRedisCache() {
			t.Error("UseRedisCache() = true without PORTFOLIO_REDIS_URL")
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SESSION_SECRET", "")

		if _, err := Load(); err == nil {
			t.Fatal("Load() expected error for missing session secret")
		}
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SESSION_SECRET", "too-short")

		if _, err := Load(); err == nil {
			t.Fatal("Load() expected error for short session secret")
		}
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("PORTFOLIO_SESSION_SECRET", secret)
		t.Setenv("PORTFOLIO_SERVER_HOST", "0.0.0.0")
		t.Setenv("PORTFOLIO_SERVER_PORT", "9090")
		t.Setenv("PORTFOLIO_ENV", "production")
		t.Setenv("PORTFOLIO_REDIS_URL", "redis://localhost:6379/0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.ServerAddr() != "0.0.0.0:9090" {
			t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
		}
		if cfg.IsDevelopment() {
			t.Error("IsDevelopment() = true in production")
		}
		if !cfg.UseRedisCache() {
			t.Error("UseRedisCache() = false with PORTFOLIO_REDIS_URL set")
		}
	})
}
