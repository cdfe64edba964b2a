// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openSessionDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Table layout required by sqlite3store.
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("creating sessions table: %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	sm := New(openSessionDB(t), true)

	if sm.Store == nil {
		t.Fatal("store not initialized")
	}
	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if sm.Cookie.Name != CookieName {
		t.Errorf("cookie name = %q, want %q", sm.Cookie.Name, CookieName)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}
}

func TestNewCookieSecurity(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		sm := New(openSessionDB(t), true)
		if sm.Cookie.Secure {
			t.Error("dev cookies must work over plain HTTP")
		}
	})

	t.Run("production", func(t *testing.T) {
		sm := New(openSessionDB(t), false)
		if !sm.Cookie.Secure {
			t.Error("production cookies must be Secure")
		}
	})
}
