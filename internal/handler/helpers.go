// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// ParseIDParam extracts the {id} URL parameter as an int64.
func ParseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// ParsePageParam extracts the ?page= query parameter, defaulting to 1.
// Out-of-range values are clamped later against the actual total.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// listFilterFromRequest builds a ListFilter from the query string for
// the dashboard content list views.
func listFilterFromRequest(r *http.Request, perPage int) store.ListFilter {
	q := r.URL.Query()

	f := store.ListFilter{
		Status:  q.Get("status"),
		Search:  strings.TrimSpace(q.Get("q")),
		Page:    ParsePageParam(r),
		PerPage: perPage,
	}
	if raw := q.Get("category"); raw != "" && raw != store.FilterAll {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			f.CategoryID = id
		}
	}
	return f
}

// Pagination holds page navigation state for list templates.
type Pagination struct {
	Page       int
	TotalPages int
	TotalItems int64
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// buildPagination clamps the requested page against the total and
// returns the navigation state.
func buildPagination(page int, totalItems int64, perPage int) Pagination {
	page, totalPages := store.ClampPage(page, totalItems, perPage)
	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}
}

// parseIDList converts the repeated ids[] form values to int64s,
// skipping anything unparseable.
func parseIDList(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id < 1 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// parseTagInput splits a comma-separated tag field into names.
// Trimming and deduplication happen in the store.
func parseTagInput(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
