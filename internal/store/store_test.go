// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
)

// testQueries creates a temporary database with migrations applied and
// returns a Queries bound to it.
func testQueries(t *testing.T) *Queries {
	t.Helper()

	f, err := os.CreateTemp("", "portfolio-store-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	return New(db)
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func TestIsUniqueViolation(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	if _, err := q.CreateCategory(ctx, "Go", "go"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	_, err := q.CreateCategory(ctx, "Go", "go")
	if err == nil {
		t.Fatal("expected duplicate category to fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
	if IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation(nil) = true, want false")
	}
	if IsUniqueViolation(sql.ErrNoRows) {
		t.Error("IsUniqueViolation(ErrNoRows) = true, want false")
	}
}
