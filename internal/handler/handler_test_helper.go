// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/Maimoon-github/Professional-Portfolio/internal/analytics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/cache"
	"github.com/Maimoon-github/Professional-Portfolio/internal/imaging"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/web"
)

// testHandler creates a Handler backed by a temporary database with
// migrations applied.
func testHandler(t *testing.T) (*Handler, *store.Queries) {
	t.Helper()

	f, err := os.CreateTemp("", "portfolio-handler-test-*.db")
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

	sm := scs.New()
	sm.Lifetime = 24 * time.Hour

	templates, err := web.TemplatesFS()
	if err != nil {
		t.Fatalf("templates FS: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	memCache := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = memCache.Close() })

	h := New(Config{
		Queries:   queries,
		Renderer:  renderer,
		Sessions:  sm,
		Analytics: analytics.New(queries),
		SiteCache: cache.NewSiteCache(memCache, queries, time.Minute),
		Images:    imaging.NewProcessor(t.TempDir()),
	})
	return h, queries
}

// createTestUser inserts a staff user for tests that need an actor.
func createTestUser(t *testing.T, queries *store.Queries) model.User {
	t.Helper()

	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        "staff@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c29tZXNhbHQ$RdescudvJCsgt3ub",
		Name:         "Test Staff",
		IsStaff:      true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// requestWithUser attaches a signed-in user to the request context.
func requestWithUser(r *http.Request, user model.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, user)
	return r.WithContext(ctx)
}

// requestWithSession loads an empty session into the request context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// assertStatus checks the response status code.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}
