// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Post represents a blog post.
type Post struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Excerpt        string        `json:"excerpt,omitempty"`
	Content        string        `json:"content"`
	CoverImage     string        `json:"cover_image,omitempty"`
	CategoryID     sql.NullInt64 `json:"category_id,omitempty"`
	Status         string        `json:"status"`
	AuthorID       sql.NullInt64 `json:"author_id,omitempty"`
	SEOTitle       string        `json:"seo_title,omitempty"`
	SEODescription string        `json:"seo_description,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	PublishedAt    sql.NullTime  `json:"published_at,omitempty"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}
