// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

var eventColumns = []string{
	"id", "level", "category", "message", "user_id", "metadata", "created_at",
}

func scanEvent(row sq.RowScanner) (model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt,
	)
	return e, err
}

// InsertEvent records a system event. Called from the slog bridge for
// warning-and-above records plus explicit application events.
func (q *Queries) InsertEvent(ctx context.Context, level, category, message string, userID sql.NullInt64, metadata string) error {
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO events (level, category, message, user_id, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		level, category, message, userID, metadata, time.Now())
	return err
}

// RecentEvents returns the latest events, newest first.
func (q *Queries) RecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	query := "SELECT " + strings.Join(eventColumns, ", ") +
		" FROM events ORDER BY created_at DESC, id DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PruneEvents deletes events older than the cutoff and returns the
// number removed.
func (q *Queries) PruneEvents(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
