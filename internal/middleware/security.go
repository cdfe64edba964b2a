// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig controls the browser security headers set on
// every response.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS and loosens CSP for local work.
	IsDevelopment bool

	// ContentSecurityPolicy is the full CSP header value.
	ContentSecurityPolicy string

	// HSTSMaxAge in seconds; 0 disables the header entirely.
	HSTSMaxAge            int
	HSTSIncludeSubDomains bool
	HSTSPreload           bool

	// FrameOptions is "DENY", "SAMEORIGIN", or empty to skip.
	FrameOptions string

	ReferrerPolicy    string
	PermissionsPolicy string
}

// cspDirective is one Content-Security-Policy entry; order is kept so
// the header stays stable across restarts.
type cspDirective struct {
	name  string
	value string
}

func joinCSP(directives []cspDirective) string {
	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		parts = append(parts, d.name+" "+d.value)
	}
	return strings.Join(parts, "; ")
}

// DefaultSecurityHeadersConfig returns the standard header set. The
// templates use inline styles, and the production public pages may
// load the Google Analytics snippet configured in site settings.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000,
		FrameOptions:   "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		// Deny the sensitive browser features outright; the site
		// never asks for any of them.
		PermissionsPolicy: "accelerometer=(), browsing-topics=(), camera=(), " +
			"geolocation=(), gyroscope=(), interest-cohort=(), magnetometer=(), " +
			"microphone=(), payment=(), usb=()",
	}

	scriptSrc := "'self' 'unsafe-inline' https://www.googletagmanager.com https://www.google-analytics.com"
	connectSrc := "'self' https://www.google-analytics.com"
	if isDev {
		scriptSrc = "'self' 'unsafe-inline' 'unsafe-eval'"
		connectSrc = "'self'"
	} else {
		cfg.HSTSIncludeSubDomains = true
	}

	cfg.ContentSecurityPolicy = joinCSP([]cspDirective{
		{"default-src", "'self'"},
		{"script-src", scriptSrc},
		{"style-src", "'self' 'unsafe-inline'"},
		{"img-src", "'self' data: blob:"},
		{"font-src", "'self' data:"},
		{"connect-src", connectSrc},
		{"object-src", "'none'"},
		{"base-uri", "'self'"},
		{"form-action", "'self'"},
	})
	return cfg
}

// SecurityHeaders sets the configured headers on every response.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	var hsts string
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
