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

var projectColumns = []string{
	"id", "title", "slug", "summary", "description", "hero_image",
	"repository_url", "live_url", "category_id", "position", "featured",
	"status", "author_id", "seo_title", "seo_description",
	"created_at", "updated_at", "published_at",
}

func scanProject(row sq.RowScanner) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description, &p.HeroImage,
		&p.RepositoryURL, &p.LiveURL, &p.CategoryID, &p.Position, &p.Featured,
		&p.Status, &p.AuthorID, &p.SEOTitle, &p.SEODescription,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
	)
	return p, err
}

// CreateProjectParams holds the fields for creating a project.
type CreateProjectParams struct {
	Title          string
	Slug           string
	Summary        string
	Description    string
	HeroImage      string
	RepositoryURL  string
	LiveURL        string
	CategoryID     sql.NullInt64
	Position       int64
	Featured       bool
	Status         string
	AuthorID       sql.NullInt64
	SEOTitle       string
	SEODescription string
}

// CreateProject inserts a new project and returns the stored row.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("projects").
		Columns("title", "slug", "summary", "description", "hero_image",
			"repository_url", "live_url", "category_id", "position", "featured",
			"status", "author_id", "seo_title", "seo_description",
			"created_at", "updated_at").
		Values(arg.Title, arg.Slug, arg.Summary, arg.Description, arg.HeroImage,
			arg.RepositoryURL, arg.LiveURL, arg.CategoryID, arg.Position, arg.Featured,
			arg.Status, arg.AuthorID, arg.SEOTitle, arg.SEODescription,
			now, now).
		Suffix("RETURNING " + strings.Join(projectColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Project{}, fmt.Errorf("building insert: %w", err)
	}
	return scanProject(q.db.QueryRowContext(ctx, query, args...))
}

// UpdateProjectParams holds the fields for updating a project.
type UpdateProjectParams struct {
	ID             int64
	Title          string
	Slug           string
	Summary        string
	Description    string
	HeroImage      string
	RepositoryURL  string
	LiveURL        string
	CategoryID     sql.NullInt64
	Position       int64
	Featured       bool
	Status         string
	SEOTitle       string
	SEODescription string
}

// UpdateProject updates an existing project and returns the stored row.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (model.Project, error) {
	query, args, err := q.sb.Update("projects").
		Set("title", arg.Title).
		Set("slug", arg.Slug).
		Set("summary", arg.Summary).
		Set("description", arg.Description).
		Set("hero_image", arg.HeroImage).
		Set("repository_url", arg.RepositoryURL).
		Set("live_url", arg.LiveURL).
		Set("category_id", arg.CategoryID).
		Set("position", arg.Position).
		Set("featured", arg.Featured).
		Set("status", arg.Status).
		Set("seo_title", arg.SEOTitle).
		Set("seo_description", arg.SEODescription).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": arg.ID}).
		Suffix("RETURNING " + strings.Join(projectColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Project{}, fmt.Errorf("building update: %w", err)
	}
	p, err := scanProject(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Project{}, mapNoRows(err)
	}
	return p, nil
}

// GetProjectByID returns a project by its id.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	query := "SELECT " + strings.Join(projectColumns, ", ") + " FROM projects WHERE id = ?"
	p, err := scanProject(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.Project{}, mapNoRows(err)
	}
	return p, nil
}

// GetProjectBySlug returns a project by slug. When publishedOnly is set,
// drafts are treated as absent so public callers cannot distinguish an
// unpublished slug from a missing one.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Project, error) {
	b := q.sb.Select(projectColumns...).From("projects").Where(sq.Eq{"slug": slug})
	if publishedOnly {
		b = b.Where(sq.Eq{"status": model.StatusPublished})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return model.Project{}, fmt.Errorf("building select: %w", err)
	}
	p, err := scanProject(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.Project{}, mapNoRows(err)
	}
	return p, nil
}

// ListProjects returns the filtered, ordered, paginated project list.
func (q *Queries) ListProjects(ctx context.Context, f ListFilter) ([]model.Project, error) {
	query, args, err := ProjectListQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CountProjects returns the number of projects matching the filter.
func (q *Queries) CountProjects(ctx context.Context, f ListFilter) (int64, error) {
	query, args, err := ProjectCountQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var count int64
	err = q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// RecentProjects returns the most recently created projects.
func (q *Queries) RecentProjects(ctx context.Context, limit int64) ([]model.Project, error) {
	query := "SELECT " + strings.Join(projectColumns, ", ") +
		" FROM projects ORDER BY created_at DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// FeaturedProjects returns published featured projects for the home page.
func (q *Queries) FeaturedProjects(ctx context.Context, limit int64) ([]model.Project, error) {
	query := "SELECT " + strings.Join(projectColumns, ", ") +
		" FROM projects WHERE status = ? AND featured = 1" +
		" ORDER BY position ASC, published_at DESC, title ASC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, model.StatusPublished, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// PublishProject transitions the project to published. published_at is set
// only on the first transition; repeated publishes leave it untouched.
func (q *Queries) PublishProject(ctx context.Context, id int64) (model.Project, error) {
	now := time.Now()
	query := "UPDATE projects SET status = ?, published_at = COALESCE(published_at, ?), updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(projectColumns, ", ")
	p, err := scanProject(q.db.QueryRowContext(ctx, query, model.StatusPublished, now, now, id))
	if err != nil {
		return model.Project{}, mapNoRows(err)
	}
	return p, nil
}

// UnpublishProject transitions the project back to draft. published_at is
// retained: it records when the project first went live.
func (q *Queries) UnpublishProject(ctx context.Context, id int64) (model.Project, error) {
	query := "UPDATE projects SET status = ?, updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(projectColumns, ", ")
	p, err := scanProject(q.db.QueryRowContext(ctx, query, model.StatusDraft, time.Now(), id))
	if err != nil {
		return model.Project{}, mapNoRows(err)
	}
	return p, nil
}

// ToggleProjectFeatured flips the featured flag and returns the new value.
func (q *Queries) ToggleProjectFeatured(ctx context.Context, id int64) (bool, error) {
	query := "UPDATE projects SET featured = NOT featured, updated_at = ? WHERE id = ? RETURNING featured"
	var featured bool
	err := q.db.QueryRowContext(ctx, query, time.Now(), id).Scan(&featured)
	if err != nil {
		return false, mapNoRows(err)
	}
	return featured, nil
}

// SetProjectsFeatured sets the featured flag on all matched projects in a
// single batched update.
func (q *Queries) SetProjectsFeatured(ctx context.Context, ids []int64, featured bool) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Update("projects").
		Set("featured", featured).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// SetProjectsStatus sets the status on all matched projects in a single
// batched update. Unlike PublishProject this never touches published_at;
// it backs the bulk "draft" action.
func (q *Queries) SetProjectsStatus(ctx context.Context, ids []int64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Update("projects").
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

// DeleteProjects removes all matched projects in one statement.
func (q *Queries) DeleteProjects(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Delete("projects").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteProject removes a project. Gallery images and tag links are
// cascade-deleted by foreign keys.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProjectImages returns a project's gallery images ordered by position.
func (q *Queries) ListProjectImages(ctx context.Context, projectID int64) ([]model.ProjectImage, error) {
	query := "SELECT id, project_id, image, caption, position, created_at, updated_at" +
		" FROM project_images WHERE project_id = ? ORDER BY position ASC"
	rows, err := q.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.ProjectImage
	for rows.Next() {
		var img model.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.Image, &img.Caption,
			&img.Position, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// AddProjectImage attaches a gallery image to a project.
func (q *Queries) AddProjectImage(ctx context.Context, projectID int64, image, caption string, position int64) (model.ProjectImage, error) {
	now := time.Now()
	query := "INSERT INTO project_images (project_id, image, caption, position, created_at, updated_at)" +
		" VALUES (?, ?, ?, ?, ?, ?) RETURNING id, project_id, image, caption, position, created_at, updated_at"
	var img model.ProjectImage
	err := q.db.QueryRowContext(ctx, query, projectID, image, caption, position, now, now).
		Scan(&img.ID, &img.ProjectID, &img.Image, &img.Caption, &img.Position, &img.CreatedAt, &img.UpdatedAt)
	return img, err
}

// DeleteProjectImage removes a single gallery image.
func (q *Queries) DeleteProjectImage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM project_images WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
