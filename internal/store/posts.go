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

var postColumns = []string{
	"id", "title", "slug", "excerpt", "content", "cover_image",
	"category_id", "status", "author_id", "seo_title", "seo_description",
	"created_at", "updated_at", "published_at",
}

func scanPost(row sq.RowScanner) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage,
		&p.CategoryID, &p.Status, &p.AuthorID, &p.SEOTitle, &p.SEODescription,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	)
	return p, err
}

// CreatePostParams holds the fields for creating a blog post.
type CreatePostParams struct {
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	CoverImage     string
	CategoryID     sql.NullInt64
	Status         string
	AuthorID       sql.NullInt64
	SEOTitle       string
	SEODescription string
}

// CreatePost inserts a new blog post and returns the stored row.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("posts").
		Columns("title", "slug", "excerpt", "content", "cover_image",
			"category_id", "status", "author_id", "seo_title", "seo_description",
			"created_at", "updated_at").
		Values(arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.CoverImage,
			arg.CategoryID, arg.Status, arg.AuthorID, arg.SEOTitle, arg.SEODescription,
			now, now).
		Suffix("RETURNING " + strings.Join(postColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("building insert: %w", err)
	}
	return scanPost(q.db.QueryRowContext(ctx, query, args...))
}

// UpdatePostParams holds the fields for updating a blog post.
type UpdatePostParams struct {
	ID             int64
	Title          string
	Slug           string
	Excerpt        string
	Content        string
	CoverImage     string
	CategoryID     sql.NullInt64
	Status         string
	SEOTitle       string
	SEODescription string
}

// UpdatePost updates an existing blog post and returns the stored row.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	query, args, err := q.sb.Update("posts").
		Set("title", arg.Title).
		Set("slug", arg.Slug).
		Set("excerpt", arg.Excerpt).
		Set("content", arg.Content).
		Set("cover_image", arg.CoverImage).
		Set("category_id", arg.CategoryID).
		Set("status", arg.Status).
		Set("seo_title", arg.SEOTitle).
		Set("seo_description", arg.SEODescription).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(postColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("building update: %w", err)
	}
	p, err := scanPost(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Post{}, mapNoRows(err)
	}
	return p, nil
}

// GetPostByID returns a blog post by its id.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	query := "SELECT " + strings.Join(postColumns, ", ") + " FROM posts WHERE id = ?"
	p, err := scanPost(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Post{}, mapNoRows(err)
	}
	return p, nil
}

// GetPostBySlug returns a blog post by slug, optionally restricted to
// published posts so drafts stay invisible to anonymous readers.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Post, error) {
	b := q.sb.Select(postColumns...).From("posts").Where(sq.Eq{"slug": slug})
	if publishedOnly {
		b = b.Where(sq.Eq{"status": model.StatusPublished})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("building select: %w", err)
	}
	p, err := scanPost(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Post{}, mapNoRows(err)
	}
	return p, nil
}

// ListPosts returns the filtered, ordered, paginated blog post list.
func (q *Queries) ListPosts(ctx context.Context, f ListFilter) ([]model.Post, error) {
	query, args, err := PostListQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts returns the number of blog posts matching the filter.
func (q *Queries) CountPosts(ctx context.Context, f ListFilter) (int64, error) {
	query, args, err := PostCountQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var count int64
	err = q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// RecentPosts returns the most recently created blog posts.
func (q *Queries) RecentPosts(ctx context.Context, limit int64) ([]model.Post, error) {
	query := "SELECT " + strings.Join(postColumns, ", ") +
		" FROM posts ORDER BY created_at DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// PublishPost transitions the post to published, setting published_at only
// on the first transition.
func (q *Queries) PublishPost(ctx context.Context, id int64) (model.Post, error) {
	now := time.Now()
	query := "UPDATE posts SET status = ?, published_at = COALESCE(published_at, ?), updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(postColumns, ", ")
	p, err := scanPost(q.db.QueryRowContext(ctx, query, model.StatusPublished, now, now, id))
	if err != nil {
		return model.Post{}, mapNoRows(err)
	}
	return p, nil
}

// UnpublishPost transitions the post back to draft without clearing
// published_at.
func (q *Queries) UnpublishPost(ctx context.Context, id int64) (model.Post, error) {
	query := "UPDATE posts SET status = ?, updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(postColumns, ", ")
	p, err := scanPost(q.db.QueryRowContext(ctx, query, model.StatusDraft, time.Now(), id))
	if err != nil {
		return model.Post{}, mapNoRows(err)
	}
	return p, nil
}

// SetPostsStatus sets the status on all matched posts in one batched update.
func (q *Queries) SetPostsStatus(ctx context.Context, ids []int64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Update("posts").
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

// DeletePosts removes all matched posts in one statement.
func (q *Queries) DeletePosts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Delete("posts").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// DeletePost removes a single blog post.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
