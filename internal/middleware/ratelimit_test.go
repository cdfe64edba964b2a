// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitBlocksBursts(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		r := httptest.NewRequest(http.MethodPost, "/contact", nil)
		r.RemoteAddr = "203.0.113.7:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", code)
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("second request = %d, want 200", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", code)
	}
}

func TestRateLimitIgnoresGets(t *testing.T) {
	handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodGet, "/contact", nil)
		r.RemoteAddr = "203.0.113.8:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %d = %d, want 200", i, w.Code)
		}
	}
}

func TestRateLimitPerIP(t *testing.T) {
	handler := RateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/contact", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	if code := send("203.0.113.9:1"); code != http.StatusOK {
		t.Fatalf("first ip = %d, want 200", code)
	}
	if code := send("203.0.113.9:2"); code != http.StatusTooManyRequests {
		t.Errorf("same ip different port = %d, want 429", code)
	}
	if code := send("203.0.113.10:1"); code != http.StatusOK {
		t.Errorf("other ip = %d, want 200", code)
	}
}
