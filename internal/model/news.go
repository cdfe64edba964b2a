// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// NewsItem represents a short news or update item.
type NewsItem struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Summary     string        `json:"summary,omitempty"`
	Content     string        `json:"content,omitempty"`
	CategoryID  sql.NullInt64 `json:"category_id,omitempty"`
	Link        string        `json:"link,omitempty"`
	Important   bool          `json:"important"`
	Status      string        `json:"status"`
	AuthorID    sql.NullInt64 `json:"author_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	PublishedAt sql.NullTime  `json:"published_at,omitempty"`
}

// IsPublished returns true if the news item is published.
func (n *NewsItem) IsPublished() bool {
	return n.Status == StatusPublished
}
