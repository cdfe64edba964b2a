// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig configures cross-site request forgery protection for the
// HTML surfaces. The underlying filippo.io/csrf/gorilla library works
// from Fetch metadata headers, so no cookie options are needed.
type CSRFConfig struct {
	// AuthKey authenticates the CSRF token; 32 bytes. The session
	// secret doubles as the key.
	AuthKey []byte

	// ErrorHandler answers failed validations. A plain 403 when nil.
	ErrorHandler http.Handler

	// TrustedOrigins lists host:port values allowed to POST
	// cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns the standard configuration. Development
// trusts the local dev hosts so form posts work over plain HTTP.
func DefaultCSRFConfig(authKey []byte, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	if isDev {
		cfg.TrustedOrigins = []string{"localhost:8080", "127.0.0.1:8080"}
	}
	return cfg
}

// CSRF returns the request forgery protection middleware.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = http.HandlerFunc(rejectCSRF)
	}

	opts := []csrf.Option{csrf.ErrorHandler(errorHandler)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

// rejectCSRF logs the failure detail and answers 403.
func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Error("CSRF validation failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
}
