// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// FilterAll is the sentinel filter value meaning "no filtering".
const FilterAll = "all"

// Fixed page sizes per view.
const (
	PageSizeGrid  = 12
	PageSizeList  = 20
	PageSizeMedia = 24
)

// ListFilter holds the optional filter parameters for entity list views.
// Zero values (and the "all" sentinel for Status) mean pass-through.
type ListFilter struct {
	Status     string
	CategoryID int64
	Search     string
	Page       int
	PerPage    int

	// OrderBy overrides the entity's default ordering when set.
	// Callers must whitelist columns; the clauses go into SQL verbatim.
	OrderBy []string
}

// MediaFilter holds filter parameters for the media library view.
type MediaFilter struct {
	FileType string
	Search   string
	Page     int
	PerPage  int
}

// MessageFilter holds filter parameters for the contact messages view.
// Status is one of "all", "read", "unread".
type MessageFilter struct {
	Status  string
	Search  string
	Page    int
	PerPage int
}

// Search columns per entity, mirroring the public search contract.
var (
	projectSearchColumns = []string{"title", "summary", "description"}
	postSearchColumns    = []string{"title", "excerpt", "content"}
	newsSearchColumns    = []string{"title", "summary", "content"}
	mediaSearchColumns   = []string{"title", "description", "file_path"}
	messageSearchColumns = []string{"name", "email", "subject", "message"}
)

// statusPredicate applies the status filter unless it is empty or "all".
func statusPredicate(b sq.SelectBuilder, status string) sq.SelectBuilder {
	if status == "" || status == FilterAll {
		return b
	}
	return b.Where(sq.Eq{"status": status})
}

// categoryPredicate applies the category filter unless it is zero.
func categoryPredicate(b sq.SelectBuilder, categoryID int64) sq.SelectBuilder {
	if categoryID <= 0 {
		return b
	}
	return b.Where(sq.Eq{"category_id": categoryID})
}

// searchPredicate applies a case-insensitive substring match OR-combined
// over the given columns.
func searchPredicate(b sq.SelectBuilder, term string, columns []string) sq.SelectBuilder {
	term = strings.TrimSpace(term)
	if term == "" {
		return b
	}
	pattern := "%" + strings.ToLower(term) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.Expr("LOWER("+col+") LIKE ?", pattern))
	}
	return b.Where(or)
}

// ProjectListQuery builds the filtered project list query.
// Ordering is fixed: position, then newest published, then title.
func ProjectListQuery(f ListFilter) sq.SelectBuilder {
	b := sq.Select(projectColumns...).
		From("projects").
		OrderBy(orderClauses(f.OrderBy, "position ASC", "published_at DESC", "title ASC")...)
	b = statusPredicate(b, f.Status)
	b = categoryPredicate(b, f.CategoryID)
	b = searchPredicate(b, f.Search, projectSearchColumns)
	return paginate(b, f.Page, f.PerPage)
}

// ProjectCountQuery builds the matching COUNT(*) query for ProjectListQuery.
func ProjectCountQuery(f ListFilter) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").From("projects")
	b = statusPredicate(b, f.Status)
	b = categoryPredicate(b, f.CategoryID)
	b = searchPredicate(b, f.Search, projectSearchColumns)
	return b
}

// PostListQuery builds the filtered blog post list query.
func PostListQuery(f ListFilter) sq.SelectBuilder {
	b := sq.Select(postColumns...).
		From("posts").
		OrderBy(orderClauses(f.OrderBy, "published_at DESC", "title ASC")...)
	b = statusPredicate(b, f.Status)
	b = categoryPredicate(b, f.CategoryID)
	b = searchPredicate(b, f.Search, postSearchColumns)
	return paginate(b, f.Page, f.PerPage)
}

// PostCountQuery builds the matching COUNT(*) query for PostListQuery.
func PostCountQuery(f ListFilter) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").From("posts")
	b = statusPredicate(b, f.Status)
	b = categoryPredicate(b, f.CategoryID)
	b = searchPredicate(b, f.Search, postSearchColumns)
	return b
}

// NewsListQuery builds the filtered news list query.
func NewsListQuery(f ListFilter) sq.SelectBuilder {
	b := sq.Select(newsColumns...).
		From("news_items").
		OrderBy(orderClauses(f.OrderBy, "published_at DESC", "created_at DESC")...)
	b = statusPredicate(b, f.Status)
	b = categoryPredicate(b, f.CategoryID)
	b = searchPredicate(b, f.Search, newsSearchColumns)
	return paginate(b, f.Page, f.PerPage)
}

// NewsCountQuery builds the matching COUNT(*) query for NewsListQuery.
func NewsCountQuery(f ListFilter) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").From("news_items")
	b = statusPredicate(b, f.Status)
	b = categoryPredicate(b, f.CategoryID)
	b = searchPredicate(b, f.Search, newsSearchColumns)
	return b
}

// MediaListQuery builds the filtered media asset list query.
func MediaListQuery(f MediaFilter) sq.SelectBuilder {
	b := sq.Select(mediaColumns...).
		From("media_assets").
		OrderBy("created_at DESC")
	if f.FileType != "" && f.FileType != FilterAll {
		b = b.Where(sq.Eq{"file_type": f.FileType})
	}
	b = searchPredicate(b, f.Search, mediaSearchColumns)
	return paginate(b, f.Page, f.PerPage)
}

// MediaCountQuery builds the matching COUNT(*) query for MediaListQuery.
func MediaCountQuery(f MediaFilter) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").From("media_assets")
	if f.FileType != "" && f.FileType != FilterAll {
		b = b.Where(sq.Eq{"file_type": f.FileType})
	}
	b = searchPredicate(b, f.Search, mediaSearchColumns)
	return b
}

// MessageListQuery builds the filtered contact message list query.
func MessageListQuery(f MessageFilter) sq.SelectBuilder {
	b := sq.Select(messageColumns...).
		From("contact_messages").
		OrderBy("created_at DESC")
	b = messageStatusPredicate(b, f.Status)
	b = searchPredicate(b, f.Search, messageSearchColumns)
	return paginate(b, f.Page, f.PerPage)
}

// MessageCountQuery builds the matching COUNT(*) query for MessageListQuery.
func MessageCountQuery(f MessageFilter) sq.SelectBuilder {
	b := sq.Select("COUNT(*)").From("contact_messages")
	b = messageStatusPredicate(b, f.Status)
	b = searchPredicate(b, f.Search, messageSearchColumns)
	return b
}

func messageStatusPredicate(b sq.SelectBuilder, status string) sq.SelectBuilder {
	switch status {
	case "read":
		return b.Where(sq.Eq{"is_read": true})
	case "unread":
		return b.Where(sq.Eq{"is_read": false})
	default:
		return b
	}
}

// orderClauses picks the override ordering when present.
func orderClauses(override []string, defaults ...string) []string {
	if len(override) > 0 {
		return override
	}
	return defaults
}

// paginate applies LIMIT/OFFSET when a page size is set.
func paginate(b sq.SelectBuilder, page, perPage int) sq.SelectBuilder {
	if perPage <= 0 {
		return b
	}
	if page < 1 {
		page = 1
	}
	return b.Limit(uint64(perPage)).Offset(uint64((page - 1) * perPage))
}

// ClampPage clamps a requested page number to the valid range for the
// given total, returning the effective page and the total page count.
// Out-of-range pages land on the nearest valid page instead of erroring.
func ClampPage(page int, totalItems int64, perPage int) (int, int) {
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}
