// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

// StatusCounts holds the per-status totals of one content table.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
}

// TrendPoint is one time bucket of created content.
type TrendPoint struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// contentTables maps entity kinds with a status lifecycle to their tables.
var contentTables = map[string]string{
	model.KindProject: "projects",
	model.KindPost:    "posts",
	model.KindNews:    "news_items",
}

func contentTableFor(kind string) (string, error) {
	t, ok := contentTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown content kind %q", kind)
	}
	return t, nil
}

// CountByStatus returns total, published, and draft counts for a
// content kind in one scan.
func (q *Queries) CountByStatus(ctx context.Context, kind string) (StatusCounts, error) {
	table, err := contentTableFor(kind)
	if err != nil {
		return StatusCounts{}, err
	}
	query := fmt.Sprintf(
		"SELECT COUNT(*),"+
			" COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),"+
			" COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)"+
			" FROM %s", table)
	var c StatusCounts
	err = q.db.QueryRowContext(ctx, query, model.StatusPublished, model.StatusDraft).
		Scan(&c.Total, &c.Published, &c.Draft)
	return c, err
}

// CountFeaturedProjects returns the number of featured projects.
func (q *Queries) CountFeaturedProjects(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE featured = 1").Scan(&n)
	return n, err
}

// CreationTrend buckets rows created since the cutoff by the given
// strftime format: %Y-%m-%d for days, %Y-%W for weeks, %Y-%m for months.
func (q *Queries) CreationTrend(ctx context.Context, kind string, since time.Time, bucketFormat string) ([]TrendPoint, error) {
	table, err := contentTableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT strftime(?, created_at) AS bucket, COUNT(*)"+
			" FROM %s WHERE created_at >= ? GROUP BY bucket ORDER BY bucket ASC", table)
	rows, err := q.db.QueryContext(ctx, query, bucketFormat, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Bucket, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// CategoryBreakdown returns the categories with the most content of a
// kind, limited to the top entries, largest first.
func (q *Queries) CategoryBreakdown(ctx context.Context, kind string, limit int64) ([]model.CategoryCount, error) {
	table, err := contentTableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT c.name, COUNT(t.id) AS n"+
			" FROM categories c JOIN %s t ON t.category_id = c.id"+
			" GROUP BY c.id, c.name ORDER BY n DESC, c.name ASC LIMIT ?", table)
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountMediaByType returns the number of media assets per file type.
func (q *Queries) CountMediaByType(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT file_type, COUNT(*) FROM media_assets GROUP BY file_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var t string
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}
