// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Content types worth compressing. Uploaded images and other binary
// media pass through untouched.
var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"application/xml":        true,
	"text/xml":               true,
	"image/svg+xml":          true,
	"application/rss+xml":    true,
	"application/atom+xml":   true,
}

func compressible(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if contentType == "" {
		return false
	}
	return compressibleTypes[contentType] ||
		strings.HasPrefix(strings.ToLower(contentType), "text/")
}

// Compress gzip-encodes responses for clients that accept it. The
// decision is deferred until the response starts so image and media
// responses stay uncompressed.
func Compress(level int) func(http.Handler) http.Handler {
	pool := &sync.Pool{
		New: func() any {
			gz, err := gzip.NewWriterLevel(io.Discard, level)
			if err != nil {
				gz = gzip.NewWriter(io.Discard)
			}
			return gz
		},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			cw := &compressWriter{ResponseWriter: w, pool: pool}
			defer cw.close()
			next.ServeHTTP(cw, r)
		})
	}
}

// compressWriter wraps the response and picks gzip or passthrough on
// the first write, once the Content-Type is known.
type compressWriter struct {
	http.ResponseWriter
	pool    *sync.Pool
	gz      *gzip.Writer
	started bool
}

func (cw *compressWriter) WriteHeader(code int) {
	cw.start()
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	cw.start()
	if cw.gz != nil {
		return cw.gz.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

func (cw *compressWriter) start() {
	if cw.started {
		return
	}
	cw.started = true
	if !compressible(cw.Header().Get("Content-Type")) {
		return
	}
	gz := cw.pool.Get().(*gzip.Writer)
	gz.Reset(cw.ResponseWriter)
	cw.gz = gz
	cw.Header().Set("Content-Encoding", "gzip")
	cw.Header().Add("Vary", "Accept-Encoding")
	cw.Header().Del("Content-Length")
}

func (cw *compressWriter) close() {
	if cw.gz == nil {
		return
	}
	_ = cw.gz.Close()
	cw.pool.Put(cw.gz)
	cw.gz = nil
}
