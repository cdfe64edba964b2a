// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Project represents a portfolio project.
type Project struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Summary        string        `json:"summary"`
	Description    string        `json:"description"`
	HeroImage      string        `json:"hero_image,omitempty"`
	RepositoryURL  string        `json:"repository_url,omitempty"`
	LiveURL        string        `json:"live_url,omitempty"`
	CategoryID     sql.NullInt64 `json:"category_id,omitempty"`
	Position       int64         `json:"order"`
	Featured       bool          `json:"featured"`
	Status         string        `json:"status"`
	AuthorID       sql.NullInt64 `json:"author_id,omitempty"`
	SEOTitle       string        `json:"seo_title,omitempty"`
	SEODescription string        `json:"seo_description,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	PublishedAt    sql.NullTime  `json:"published_at,omitempty"`
}

// IsPublished returns true if the project is published.
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}

// IsDraft returns true if the project is a draft.
func (p *Project) IsDraft() bool {
	return p.Status == StatusDraft
}

// ProjectImage is a gallery image attached to a project.
// Images are cascade-deleted with their project.
type ProjectImage struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Image     string    `json:"image"`
	Caption   string    `json:"caption,omitempty"`
	Position  int64     `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
