// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Sentinel errors surfaced by the store.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSettingsExist is returned when creating a site settings row
	// while one already exists. Site settings are a singleton.
	ErrSettingsExist = errors.New("site settings already exist")
)

// Queries provides access to all database operations.
type Queries struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// New creates a Queries instance bound to the given database handle.
func New(db *sql.DB) *Queries {
	return &Queries{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

// DB exposes the underlying handle for callers that need raw access
// (the session store, healthcheck).
func (q *Queries) DB() *sql.DB {
	return q.db
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. Both drivers used in this project (modernc in production,
// mattn in tests) surface the constraint name in the error text, so
// string matching is the portable check.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// mapNoRows converts sql.ErrNoRows to ErrNotFound.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
