// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager backed by the
// application's SQLite database.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Staff sessions last a full day; scs refreshes the deadline on use.
const sessionLifetime = 24 * time.Hour

// CookieName identifies the session cookie across the site.
const CookieName = "portfolio_session"

// New returns a session manager persisting sessions in the given
// database. Cookies are Secure outside development.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)
	sm.Lifetime = sessionLifetime
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	return sm
}
