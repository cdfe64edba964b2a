// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"os"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// testAPIHandler creates an API handler backed by a temporary database
// with migrations applied.
func testAPIHandler(t *testing.T) (*Handler, *store.Queries) {
	t.Helper()

	f, err := os.CreateTemp("", "portfolio-api-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	queries := store.New(db)
	return NewHandler(queries), queries
}

// asStaff attaches a staff user to the request context.
func asStaff(r *http.Request) *http.Request {
	user := model.User{ID: 1, Email: "staff@example.com", Name: "Staff", IsStaff: true}
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, user)
	return r.WithContext(ctx)
}

// withURLParams adds chi URL parameters to a request.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParseOrdering(t *testing.T) {
	allowed := map[string]string{
		"title":      "title",
		"order":      "position",
		"created_at": "created_at",
	}

	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single ascending", "title", []string{"title ASC"}, false},
		{"single descending", "-created_at", []string{"created_at DESC"}, false},
		{"alias maps to column", "order", []string{"position ASC"}, false},
		{"multiple fields", "title,-order", []string{"title ASC", "position DESC"}, false},
		{"unknown field", "secret", nil, true},
		{"unknown among valid", "title,secret", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrdering(tt.raw, allowed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("clauses = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePerPage(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/api/projects", defaultPerPage},
		{"/api/projects?per_page=5", 5},
		{"/api/projects?per_page=0", defaultPerPage},
		{"/api/projects?per_page=-3", defaultPerPage},
		{"/api/projects?per_page=1000", maxPerPage},
		{"/api/projects?per_page=abc", defaultPerPage},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
		if got := parsePerPage(req); got != tt.want {
			t.Errorf("parsePerPage(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}
