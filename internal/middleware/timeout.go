// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after d and answers 503 if no
// response was started yet. Handlers that already wrote are left alone;
// the guarded writer prevents a racing second WriteHeader.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				gw.mu.Lock()
				defer gw.mu.Unlock()
				if !gw.started {
					gw.started = true
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte("Request timeout"))
				}
			}
		})
	}
}

// guardedWriter serializes response starts so the timeout path and the
// handler goroutine cannot both write headers.
type guardedWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	started bool
}

func (gw *guardedWriter) WriteHeader(code int) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if gw.started {
		return
	}
	gw.started = true
	gw.ResponseWriter.WriteHeader(code)
}

func (gw *guardedWriter) Write(b []byte) (int, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if !gw.started {
		gw.started = true
		gw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return gw.ResponseWriter.Write(b)
}
