// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer used for site settings and
// other per-request lookups on the public pages. A memory cache is the
// default; Redis is used when a connection URL is configured.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement. Implementations must
// be safe for concurrent use. Values are []byte so the memory and
// Redis backends behave identically.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss if the key is not
	// present or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Config selects and configures a backend.
type Config struct {
	// RedisURL enables the Redis backend when non-empty,
	// e.g. redis://localhost:6379/0.
	RedisURL string

	// Prefix is prepended to all Redis keys.
	Prefix string

	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration
}

// New creates a cache from the config: Redis when a URL is set,
// otherwise in-memory.
func New(cfg Config) (Cache, error) {
	ttl := cfg.DefaultTTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if cfg.RedisURL != "" {
		return NewRedisCache(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: ttl,
		})
	}
	return NewMemoryCache(ttl), nil
}
