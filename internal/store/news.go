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

var newsColumns = []string{
	"id", "title", "slug", "summary", "content", "category_id", "link",
	"important", "status", "author_id", "created_at", "updated_at", "published_at",
}

func scanNewsItem(row sq.RowScanner) (model.NewsItem, error) {
	var n model.NewsItem
	err := row.Scan(
		&n.ID, &n.Title, &n.Slug, &n.Summary, &n.Content, &n.CategoryID, &n.Link,
		&n.Important, &n.Status, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt, &n.PublishedAt,
	)
	return n, err
}

// CreateNewsItemParams holds the fields for creating a news item.
type CreateNewsItemParams struct {
	Title      string
	Slug       string
	Summary    string
	Content    string
	CategoryID sql.NullInt64
	Link       string
	Important  bool
	Status     string
	AuthorID   sql.NullInt64
}

// CreateNewsItem inserts a new news item and returns the stored row.
func (q *Queries) CreateNewsItem(ctx context.Context, arg CreateNewsItemParams) (model.NewsItem, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("news_items").
		Columns("title", "slug", "summary", "content", "category_id", "link",
			"important", "status", "author_id", "created_at", "updated_at").
		Values(arg.Title, arg.Slug, arg.Summary, arg.Content, arg.CategoryID, arg.Link,
			arg.Important, arg.Status, arg.AuthorID, now, now).
		Suffix("RETURNING " + strings.Join(newsColumns, ", ")).
		ToSql()
	if err != nil {
		return model.NewsItem{}, fmt.Errorf("building insert: %w", err)
	}
	return scanNewsItem(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateNewsItemParams holds the fields for updating a news item.
type UpdateNewsItemParams struct {
	ID         int64
	Title      string
	Slug       string
	Summary    string
	Content    string
	CategoryID sql.NullInt64
	Link       string
	Important  bool
	Status     string
}

// UpdateNewsItem updates an existing news item and returns the stored row.
func (q *Queries) UpdateNewsItem(ctx context.Context, arg UpdateNewsItemParams) (model.NewsItem, error) {
	query, args, err := q.sb.Update("news_items").
		Set("title", arg.Title).
		Set("slug", arg.Slug).
		Set("summary", arg.Summary).
		Set("content", arg.Content).
		Set("category_id", arg.CategoryID).
		Set("link", arg.Link).
		Set("important", arg.Important).
		Set("status", arg.Status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(newsColumns, ", ")).
		ToSql()
	if err != nil {
		return model.NewsItem{}, fmt.Errorf("building update: %w", err)
	}
	n, err := scanNewsItem(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.NewsItem{}, mapNoRows(err)
	}
	return n, nil
}

// GetNewsItemByID returns a news item by its id.
func (q *Queries) GetNewsItemByID(ctx context.Context, id int64) (model.NewsItem, error) {
	query := "SELECT " + strings.Join(newsColumns, ", ") + " FROM news_items WHERE id = ?"
	n, err := scanNewsItem(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.NewsItem{}, mapNoRows(err)
	}
	return n, nil
}

// GetNewsItemBySlug returns a news item by slug, optionally restricted to
// published items.
func (q *Queries) GetNewsItemBySlug(ctx context.Context, slug string, publishedOnly bool) (model.NewsItem, error) {
	b := q.sb.Select(newsColumns...).From("news_items").Where(sq.Eq{"slug": slug})
	if publishedOnly {
		b = b.Where(sq.Eq{"status": model.StatusPublished})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.NewsItem{}, fmt.Errorf("building select: %w", err)
	}
	n, err := scanNewsItem(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.NewsItem{}, mapNoRows(err)
	}
	return n, nil
}

// ListNewsItems returns the filtered, ordered, paginated news list.
func (q *Queries) ListNewsItems(ctx context.Context, f ListFilter) ([]model.NewsItem, error) {
	query, args, err := NewsListQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		n, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// CountNewsItems returns the number of news items matching the filter.
func (q *Queries) CountNewsItems(ctx context.Context, f ListFilter) (int64, error) {
	query, args, err := NewsCountQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var count int64
	err = q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// RecentNewsItems returns the most recently created news items.
func (q *Queries) RecentNewsItems(ctx context.Context, limit int64) ([]model.NewsItem, error) {
	query := "SELECT " + strings.Join(newsColumns, ", ") +
		" FROM news_items ORDER BY created_at DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		n, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// LatestPublishedNews returns published news ordered by publish date,
// used by the public home page.
func (q *Queries) LatestPublishedNews(ctx context.Context, limit int64) ([]model.NewsItem, error) {
	query := "SELECT " + strings.Join(newsColumns, ", ") +
		" FROM news_items WHERE status = ? ORDER BY published_at DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, model.StatusPublished, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		n, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// PublishNewsItem transitions the news item to published, setting
// published_at only on the first transition.
func (q *Queries) PublishNewsItem(ctx context.Context, id int64) (model.NewsItem, error) {
	now := time.Now()
	query := "UPDATE news_items SET status = ?, published_at = COALESCE(published_at, ?), updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(newsColumns, ", ")
	n, err := scanNewsItem(q.db.QueryRowContext(ctx, query, model.StatusPublished, now, now, id))
	if err != nil {
		return model.NewsItem{}, mapNoRows(err)
	}
	return n, nil
}

// UnpublishNewsItem transitions the news item back to draft without
// clearing published_at.
func (q *Queries) UnpublishNewsItem(ctx context.Context, id int64) (model.NewsItem, error) {
	query := "UPDATE news_items SET status = ?, updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(newsColumns, ", ")
	n, err := scanNewsItem(q.db.QueryRowContext(ctx, query, model.StatusDraft, time.Now(), id))
	if err != nil {
		return model.NewsItem{}, mapNoRows(err)
	}
	return n, nil
}

// SetNewsItemsStatus sets the status on all matched news items in one
// batched update.
func (q *Queries) SetNewsItemsStatus(ctx context.Context, ids []int64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Update("news_items").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteNewsItems removes all matched news items in one statement.
func (q *Queries) DeleteNewsItems(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Delete("news_items").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteNewsItem removes a single news item.
func (q *Queries) DeleteNewsItem(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM news_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
