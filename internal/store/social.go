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

var socialLinkColumns = []string{
	"id", "platform", "url", "icon", "position", "created_at", "updated_at",
}

func scanSocialLink(row sq.RowScanner) (model.SocialLink, error) {
	var s model.SocialLink
	err := row.Scan(
		&s.ID, &s.Platform, &s.URL, &s.Icon, &s.Position, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateSocialLinkParams holds the fields for creating a social link.
type CreateSocialLinkParams struct {
	Platform string
	URL      string
	Icon     string
	Position int64
}

// CreateSocialLink inserts a new social link and returns the stored row.
// The (platform, url) pair is unique.
func (q *Queries) CreateSocialLink(ctx context.Context, arg CreateSocialLinkParams) (model.SocialLink, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("social_links").
		Columns("platform", "url", "icon", "position", "created_at", "updated_at").
		Values(arg.Platform, arg.URL, arg.Icon, arg.Position, now, now).
		Suffix("RETURNING " + strings.Join(socialLinkColumns, ", ")).
		ToSql()
	if err != nil {
		return model.SocialLink{}, fmt.Errorf("building insert: %w", err)
	}
	return scanSocialLink(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateSocialLinkParams holds the fields for updating a social link.
type UpdateSocialLinkParams struct {
	ID       int64
	Platform string
	URL      string
	Icon     string
	Position int64
}

// UpdateSocialLink updates a social link and returns the stored row.
func (q *Queries) UpdateSocialLink(ctx context.Context, arg UpdateSocialLinkParams) (model.SocialLink, error) {
	query, args, err := q.sb.Update("social_links").
		Set("platform", arg.Platform).
		Set("url", arg.URL).
		Set("icon", arg.Icon).
		Set("position", arg.Position).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(socialLinkColumns, ", ")).
		ToSql()
	if err != nil {
		return model.SocialLink{}, fmt.Errorf("building update: %w", err)
	}
	s, err := scanSocialLink(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.SocialLink{}, mapNoRows(err)
	}
	return s, nil
}

// GetSocialLinkByID returns a social link by its id.
func (q *Queries) GetSocialLinkByID(ctx context.Context, id int64) (model.SocialLink, error) {
	query := "SELECT " + strings.Join(socialLinkColumns, ", ") + " FROM social_links WHERE id = ?"
	s, err := scanSocialLink(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.SocialLink{}, mapNoRows(err)
	}
	return s, nil
}

// ListSocialLinks returns all social links ordered by position.
func (q *Queries) ListSocialLinks(ctx context.Context) ([]model.SocialLink, error) {
	query := "SELECT " + strings.Join(socialLinkColumns, ", ") +
		" FROM social_links ORDER BY position ASC, platform ASC"
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.SocialLink
	for rows.Next() {
		s, err := scanSocialLink(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// DeleteSocialLink removes a social link.
func (q *Queries) DeleteSocialLink(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM social_links WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
