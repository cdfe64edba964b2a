// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "portfolio-logging-test-*.db")
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
	return db
}

// discardHandler drops all records.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func lastEvent(t *testing.T, db *sql.DB) model.Event {
	t.Helper()
	events, err := store.New(db).RecentEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("no events recorded")
	}
	return events[0]
}

func TestHandleMirrorsErrors(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Error("database backup failed", "path", "/tmp/x")

	e := lastEvent(t, db)
	if e.Level != model.EventLevelError {
		t.Errorf("Level = %q, want error", e.Level)
	}
	if e.Message != "database backup failed" {
		t.Errorf("Message = %q", e.Message)
	}
	if e.Metadata != `{"path":"/tmp/x"}` {
		t.Errorf("Metadata = %q", e.Metadata)
	}
}

func TestHandleSkipsInfo(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Info("routine request")

	events, err := store.New(db).RecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("info record mirrored to event log: %+v", events)
	}
}

func TestCategoryExtraction(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		attrs    []any
		expected string
	}{
		{"explicit attribute", "anything", []any{"category", model.EventCategoryConfig}, model.EventCategoryConfig},
		{"auth inferred", "login attempt rejected", nil, model.EventCategoryAuth},
		{"content inferred", "project image missing", nil, model.EventCategoryContent},
		{"settings inferred", "setting update failed", nil, model.EventCategoryConfig},
		{"default", "disk almost full", nil, model.EventCategorySystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			logger := slog.New(NewEventLogHandler(discardHandler{}, db))

			logger.Warn(tt.message, tt.attrs...)

			e := lastEvent(t, db)
			if e.Category != tt.expected {
				t.Errorf("Category = %q, want %q", e.Category, tt.expected)
			}
			if e.Level != model.EventLevelWarning {
				t.Errorf("Level = %q, want warning", e.Level)
			}
		})
	}
}

func TestCustomThreshold(t *testing.T) {
	db := testDB(t)
	h := NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo)
	logger := slog.New(h)

	logger.Info("cache warmed")

	e := lastEvent(t, db)
	if e.Level != model.EventLevelInfo {
		t.Errorf("Level = %q, want info", e.Level)
	}
}
