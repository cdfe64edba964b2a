// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is a thread-safe in-memory cache with TTL support.
type MemoryCache struct {
	data    sync.Map
	ttl     time.Duration
	stopCh  chan struct{}
	stopped atomic.Bool
}

// memoryEntry holds a cached value with its expiration time.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache with the given default TTL and
// starts a background sweep for expired entries.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *MemoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			c.data.Range(func(key, val any) bool {
				if now.After(val.(*memoryEntry).expiresAt) {
					c.data.Delete(key)
				}
				return true
			})
		}
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.stopped.Load() {
		return nil, ErrCacheClosed
	}
	val, ok := c.data.Load(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	entry := val.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.data.Delete(key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value with the given TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.stopped.Load() {
		return ErrCacheClosed
	}
	if ttl == 0 {
		ttl = c.ttl
	}
	c.data.Store(key, &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a key from the cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.data.Delete(key)
	return nil
}

// Clear removes all entries.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.data.Range(func(key, _ any) bool {
		c.data.Delete(key)
		return true
	})
	return nil
}

// Close stops the background sweep.
func (c *MemoryCache) Close() error {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopCh)
	}
	return nil
}
