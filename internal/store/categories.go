// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

// CreateCategory inserts a new category and returns the stored row.
func (q *Queries) CreateCategory(ctx context.Context, name, slug string) (model.Category, error) {
	query, args, err := q.sb.Insert("categories").
		Columns("name", "slug").
		Values(name, slug).
		Suffix("RETURNING id, name, slug").
		ToSql()
	if err != nil {
		return model.Category{}, fmt.Errorf("building insert: %w", err)
	}
	var c model.Category
	err = q.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Slug)
	return c, err
}

// UpdateCategory renames a category and returns the stored row.
func (q *Queries) UpdateCategory(ctx context.Context, id int64, name, slug string) (model.Category, error) {
	query, args, err := q.sb.Update("categories").
		Set("name", name).
		Set("slug", slug).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, slug").
		ToSql()
	if err != nil {
		return model.Category{}, fmt.Errorf("building update: %w", err)
	}
	var c model.Category
	if err := q.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return model.Category{}, mapNoRows(err)
	}
	return c, nil
}

// GetCategoryByID returns a category by its id.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := q.db.QueryRowContext(ctx,
		"SELECT id, name, slug FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return model.Category{}, mapNoRows(err)
	}
	return c, nil
}

// GetCategoryBySlug returns a category by slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := q.db.QueryRowContext(ctx,
		"SELECT id, name, slug FROM categories WHERE slug = ?", slug,
	).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return model.Category{}, mapNoRows(err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT id, name, slug FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// DeleteCategory removes a category. Content referencing it keeps a
// null category via the ON DELETE SET NULL constraint.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
