// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

var skillColumns = []string{
	"id", "name", "proficiency", "category", "position", "created_at", "updated_at",
}

func scanSkill(row sq.RowScanner) (model.Skill, error) {
	var s model.Skill
	err := row.Scan(
		&s.ID, &s.Name, &s.Proficiency, &s.Category, &s.Position, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateSkillParams holds the fields for creating a skill.
type CreateSkillParams struct {
	Name        string
	Proficiency int64
	Category    string
	Position    int64
}

// CreateSkill inserts a new skill and returns the stored row. The
// (name, category) pair is unique.
func (q *Queries) CreateSkill(ctx context.Context, arg CreateSkillParams) (model.Skill, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("skills").
		Columns("name", "proficiency", "category", "position", "created_at", "updated_at").
		Values(arg.Name, arg.Proficiency, arg.Category, arg.Position, now, now).
		Suffix("RETURNING " + strings.Join(skillColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Skill{}, fmt.Errorf("building insert: %w", err)
	}
	return scanSkill(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateSkillParams holds the fields for updating a skill.
type UpdateSkillParams struct {
	ID          int64
	Name        string
	Proficiency int64
	Category    string
	Position    int64
}

// UpdateSkill updates a skill and returns the stored row.
func (q *Queries) UpdateSkill(ctx context.Context, arg UpdateSkillParams) (model.Skill, error) {
	query, args, err := q.sb.Update("skills").
		Set("name", arg.Name).
		Set("proficiency", arg.Proficiency).
		Set("category", arg.Category).
		Set("position", arg.Position).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(skillColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Skill{}, fmt.Errorf("building update: %w", err)
	}
	s, err := scanSkill(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Skill{}, mapNoRows(err)
	}
	return s, nil
}

// GetSkillByID returns a skill by its id.
func (q *Queries) GetSkillByID(ctx context.Context, id int64) (model.Skill, error) {
	query := "SELECT " + strings.Join(skillColumns, ", ") + " FROM skills WHERE id = ?"
	s, err := scanSkill(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Skill{}, mapNoRows(err)
	}
	return s, nil
}

// ListSkills returns all skills grouped by category then ordered by
// position within each group.
func (q *Queries) ListSkills(ctx context.Context) ([]model.Skill, error) {
	return q.ListSkillsOrdered(ctx, nil)
}

// ListSkillsOrdered returns all skills using the given ORDER BY
// clauses. Callers must whitelist columns; empty means the canonical
// order.
func (q *Queries) ListSkillsOrdered(ctx context.Context, orderBy []string) ([]model.Skill, error) {
	query, args, err := q.sb.Select(skillColumns...).
		From("skills").
		OrderBy(orderClauses(orderBy, "category ASC", "position ASC", "name ASC")...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// DeleteSkill removes a skill.
func (q *Queries) DeleteSkill(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM skills WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
