// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheBasicOperations(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) = %v, want ErrCacheMiss", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = %q, want %q", got, "value")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after delete = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte("v"), 0); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("Get(%s) after clear = %v, want ErrCacheMiss", key, err)
		}
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Closing twice is safe.
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after close = %v, want ErrCacheClosed", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after close = %v, want ErrCacheClosed", err)
	}
}
