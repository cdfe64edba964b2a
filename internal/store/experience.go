// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

var experienceColumns = []string{
	"id", "role", "company", "location", "start_date", "end_date",
	"is_current", "description", "position", "created_at", "updated_at",
}

func scanExperience(row sq.RowScanner) (model.Experience, error) {
	var e model.Experience
	err := row.Scan(
		&e.ID, &e.Role, &e.Company, &e.Location, &e.StartDate, &e.EndDate,
		&e.IsCurrent, &e.Description, &e.Position, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateExperienceParams holds the fields for creating an experience entry.
type CreateExperienceParams struct {
	Role        string
	Company     string
	Location    string
	StartDate   time.Time
	EndDate     sql.NullTime
	IsCurrent   bool
	Description string
	Position    int64
}

// CreateExperience inserts a new experience entry and returns the stored row.
func (q *Queries) CreateExperience(ctx context.Context, arg CreateExperienceParams) (model.Experience, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("experiences").
		Columns("role", "company", "location", "start_date", "end_date",
			"is_current", "description", "position", "created_at", "updated_at").
		Values(arg.Role, arg.Company, arg.Location, arg.StartDate, arg.EndDate,
			arg.IsCurrent, arg.Description, arg.Position, now, now).
		Suffix("RETURNING " + strings.Join(experienceColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Experience{}, fmt.Errorf("building insert: %w", err)
	}
	return scanExperience(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateExperienceParams holds the fields for updating an experience entry.
type UpdateExperienceParams struct {
	ID          int64
	Role        string
	Company     string
	Location    string
	StartDate   time.Time
	EndDate     sql.NullTime
	IsCurrent   bool
	Description string
	Position    int64
}

// UpdateExperience updates an experience entry and returns the stored row.
func (q *Queries) UpdateExperience(ctx context.Context, arg UpdateExperienceParams) (model.Experience, error) {
	query, args, err := q.sb.Update("experiences").
		Set("role", arg.Role).
		Set("company", arg.Company).
		Set("location", arg.Location).
		Set("start_date", arg.StartDate).
		Set("end_date", arg.EndDate).
		Set("is_current", arg.IsCurrent).
		Set("description", arg.Description).
		Set("position", arg.Position).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(experienceColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Experience{}, fmt.Errorf("building update: %w", err)
	}
	e, err := scanExperience(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Experience{}, mapNoRows(err)
	}
	return e, nil
}

// GetExperienceByID returns an experience entry by its id.
func (q *Queries) GetExperienceByID(ctx context.Context, id int64) (model.Experience, error) {
	query := "SELECT " + strings.Join(experienceColumns, ", ") + " FROM experiences WHERE id = ?"
	e, err := scanExperience(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Experience{}, mapNoRows(err)
	}
	return e, nil
}

// ListExperiences returns all experience entries, current roles first,
// then most recent start date.
func (q *Queries) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return q.ListExperiencesOrdered(ctx, nil)
}

// ListExperiencesOrdered returns all experience entries using the given
// ORDER BY clauses. Callers must whitelist columns; empty means the
// canonical order.
func (q *Queries) ListExperiencesOrdered(ctx context.Context, orderBy []string) ([]model.Experience, error) {
	query, args, err := q.sb.Select(experienceColumns...).
		From("experiences").
		OrderBy(orderClauses(orderBy, "is_current DESC", "start_date DESC")...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// DeleteExperience removes an experience entry.
func (q *Queries) DeleteExperience(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM experiences WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
