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

var mediaColumns = []string{
	"id", "file_path", "file_type", "title", "alt_text", "description",
	"created_at", "updated_at",
}

func scanMediaAsset(row sq.RowScanner) (model.MediaAsset, error) {
	var m model.MediaAsset
	err := row.Scan(
		&m.ID, &m.FilePath, &m.FileType, &m.Title, &m.AltText, &m.Description,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateMediaAssetParams holds the fields for registering an uploaded file.
type CreateMediaAssetParams struct {
	FilePath    string
	FileType    string
	Title       string
	AltText     string
	Description string
}

// CreateMediaAsset inserts a new media asset and returns the stored row.
func (q *Queries) CreateMediaAsset(ctx context.Context, arg CreateMediaAssetParams) (model.MediaAsset, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("media_assets").
		Columns("file_path", "file_type", "title", "alt_text", "description",
			"created_at", "updated_at").
		Values(arg.FilePath, arg.FileType, arg.Title, arg.AltText, arg.Description, now, now).
		Suffix("RETURNING " + strings.Join(mediaColumns, ", ")).
		ToSql()
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("building insert: %w", err)
	}
	return scanMediaAsset(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateMediaAssetParams holds the editable metadata of a media asset.
// The stored file itself is immutable.
type UpdateMediaAssetParams struct {
	ID          int64
	Title       string
	AltText     string
	Description string
}

// UpdateMediaAsset updates asset metadata and returns the stored row.
func (q *Queries) UpdateMediaAsset(ctx context.Context, arg UpdateMediaAssetParams) (model.MediaAsset, error) {
	query, args, err := q.sb.Update("media_assets").
		Set("title", arg.Title).
		Set("alt_text", arg.AltText).
		Set("description", arg.Description).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(mediaColumns, ", ")).
		ToSql()
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("building update: %w", err)
	}
	m, err := scanMediaAsset(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.MediaAsset{}, mapNoRows(err)
	}
	return m, nil
}

// GetMediaAssetByID returns a media asset by its id.
func (q *Queries) GetMediaAssetByID(ctx context.Context, id int64) (model.MediaAsset, error) {
	query := "SELECT " + strings.Join(mediaColumns, ", ") + " FROM media_assets WHERE id = ?"
	m, err := scanMediaAsset(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.MediaAsset{}, mapNoRows(err)
	}
	return m, nil
}

// ListMediaAssets returns the filtered, paginated media library.
func (q *Queries) ListMediaAssets(ctx context.Context, f MediaFilter) ([]model.MediaAsset, error) {
	query, args, err := MediaListQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.MediaAsset
	for rows.Next() {
		m, err := scanMediaAsset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CountMediaAssets returns the number of assets matching the filter.
func (q *Queries) CountMediaAssets(ctx context.Context, f MediaFilter) (int64, error) {
	query, args, err := MediaCountQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var count int64
	err = q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// DeleteMediaAssets removes all matched media assets in one statement.
func (q *Queries) DeleteMediaAssets(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Delete("media_assets").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteMediaAsset removes a single media asset.
func (q *Queries) DeleteMediaAsset(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM media_assets WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
