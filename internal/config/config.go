// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"PORTFOLIO_DB_PATH" envDefault:"./data/portfolio.db"`
	SessionSecret string `env:"PORTFOLIO_SESSION_SECRET,required"`
	ServerHost    string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"PORTFOLIO_UPLOADS_DIR" envDefault:"./uploads"`

	// Optional Redis URL for the site-settings cache. When unset the
	// in-memory cache is used.
	RedisURL    string `env:"PORTFOLIO_REDIS_URL"`
	CachePrefix string `env:"PORTFOLIO_CACHE_PREFIX" envDefault:"portfolio:"`
	CacheTTL    int    `env:"PORTFOLIO_CACHE_TTL" envDefault:"300"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("PORTFOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
