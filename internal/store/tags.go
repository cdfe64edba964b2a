// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

// tagJoin maps an entity kind to its tag join table.
type tagJoin struct {
	table  string
	column string
}

var tagJoins = map[string]tagJoin{
	model.KindProject: {table: "project_tags", column: "project_id"},
	model.KindPost:    {table: "post_tags", column: "post_id"},
	model.KindNews:    {table: "news_tags", column: "news_id"},
}

func joinFor(kind string) (tagJoin, error) {
	j, ok := tagJoins[kind]
	if !ok {
		return tagJoin{}, fmt.Errorf("unknown taggable kind %q", kind)
	}
	return j, nil
}

// GetTags returns the tag names attached to an entity, ordered by name.
func (q *Queries) GetTags(ctx context.Context, kind string, entityID int64) ([]string, error) {
	j, err := joinFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT t.name FROM tags t JOIN %s j ON j.tag_id = t.id WHERE j.%s = ? ORDER BY t.name ASC",
		j.table, j.column,
	)
	rows, err := q.db.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// SetTags replaces the tag set of an entity. Tag names are trimmed,
// deduplicated, and created on first use within the entity's kind.
func (q *Queries) SetTags(ctx context.Context, kind string, entityID int64, names []string) error {
	j, err := joinFor(kind)
	if err != nil {
		return err
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	clear := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", j.table, j.column)
	if _, err := tx.ExecContext(ctx, clear, entityID); err != nil {
		return err
	}

	seen := make(map[string]bool, len(names))
	attach := fmt.Sprintf("INSERT INTO %s (%s, tag_id) VALUES (?, ?)", j.table, j.column)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tags (kind, name) VALUES (?, ?) ON CONFLICT (kind, name) DO NOTHING",
			kind, name,
		); err != nil {
			return err
		}
		var tagID int64
		if err := tx.QueryRowContext(ctx,
			"SELECT id FROM tags WHERE kind = ? AND name = ?", kind, name,
		).Scan(&tagID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, attach, entityID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListTags returns all distinct tag names for a kind, used by the
// dashboard filter dropdowns.
func (q *Queries) ListTags(ctx context.Context, kind string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT name FROM tags WHERE kind = ? ORDER BY name ASC", kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
