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

var educationColumns = []string{
	"id", "institution", "degree", "field_of_study", "start_year", "end_year",
	"description", "position", "created_at", "updated_at",
}

func scanEducation(row sq.RowScanner) (model.Education, error) {
	var e model.Education
	err := row.Scan(
		&e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartYear, &e.EndYear,
		&e.Description, &e.Position, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateEducationParams holds the fields for creating an education entry.
type CreateEducationParams struct {
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    int64
	EndYear      sql.NullInt64
	Description  string
	Position     int64
}

// CreateEducation inserts a new education entry and returns the stored row.
func (q *Queries) CreateEducation(ctx context.Context, arg CreateEducationParams) (model.Education, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("education").
		Columns("institution", "degree", "field_of_study", "start_year", "end_year",
			"description", "position", "created_at", "updated_at").
		Values(arg.Institution, arg.Degree, arg.FieldOfStudy, arg.StartYear, arg.EndYear,
			arg.Description, arg.Position, now, now).
		Suffix("RETURNING " + strings.Join(educationColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Education{}, fmt.Errorf("building insert: %w", err)
	}
	return scanEducation(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateEducationParams holds the fields for updating an education entry.
type UpdateEducationParams struct {
	ID           int64
	Institution  string
	Degree       string
	FieldOfStudy string
	StartYear    int64
	EndYear      sql.NullInt64
	Description  string
	Position     int64
}

// UpdateEducation updates an education entry and returns the stored row.
func (q *Queries) UpdateEducation(ctx context.Context, arg UpdateEducationParams) (model.Education, error) {
	query, args, err := q.sb.Update("education").
		Set("institution", arg.Institution).
		Set("degree", arg.Degree).
		Set("field_of_study", arg.FieldOfStudy).
		Set("start_year", arg.StartYear).
		Set("end_year", arg.EndYear).
		Set("description", arg.Description).
		Set("position", arg.Position).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(educationColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Education{}, fmt.Errorf("building update: %w", err)
	}
	e, err := scanEducation(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Education{}, mapNoRows(err)
	}
	return e, nil
}

// GetEducationByID returns an education entry by its id.
func (q *Queries) GetEducationByID(ctx context.Context, id int64) (model.Education, error) {
	query := "SELECT " + strings.Join(educationColumns, ", ") + " FROM education WHERE id = ?"
	e, err := scanEducation(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Education{}, mapNoRows(err)
	}
	return e, nil
}

// ListEducation returns all education entries ordered by position,
// then most recent start year first.
func (q *Queries) ListEducation(ctx context.Context) ([]model.Education, error) {
	query := "SELECT " + strings.Join(educationColumns, ", ") +
		" FROM education ORDER BY position ASC, start_year DESC"
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Education
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// DeleteEducation removes an education entry.
func (q *Queries) DeleteEducation(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM education WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
