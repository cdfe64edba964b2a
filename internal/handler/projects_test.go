// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

func submitForm(t *testing.T, h *Handler, handlerFunc http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithSession(h.sessions, req)
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestCreateProjectForm(t *testing.T) {
	h, queries := testHandler(t)

	t.Run("created as published gets a publish time", func(t *testing.T) {
		rec := submitForm(t, h, h.CreateProject, "/dashboard/projects", url.Values{
			"title":  {"Shipped Project"},
			"status": {model.StatusPublished},
		})
		assertStatus(t, rec.Code, http.StatusSeeOther)

		stored, err := queries.GetProjectBySlug(context.Background(), "shipped-project", false)
		if err != nil {
			t.Fatalf("GetProjectBySlug: %v", err)
		}
		if stored.Status != model.StatusPublished {
			t.Fatalf("status = %q, want published", stored.Status)
		}
		if !stored.PublishedAt.Valid {
			t.Error("published_at should be set when created as published")
		}
	})

	t.Run("created as draft has no publish time", func(t *testing.T) {
		rec := submitForm(t, h, h.CreateProject, "/dashboard/projects", url.Values{
			"title":  {"Parked Project"},
			"status": {model.StatusDraft},
		})
		assertStatus(t, rec.Code, http.StatusSeeOther)

		stored, err := queries.GetProjectBySlug(context.Background(), "parked-project", false)
		if err != nil {
			t.Fatalf("GetProjectBySlug: %v", err)
		}
		if stored.PublishedAt.Valid {
			t.Error("published_at should stay unset for drafts")
		}
	})
}

func TestCreatePostFormPublished(t *testing.T) {
	h, queries := testHandler(t)

	rec := submitForm(t, h, h.CreatePost, "/dashboard/blog", url.Values{
		"title":   {"Shipped Post"},
		"content": {"Body text."},
		"status":  {model.StatusPublished},
	})
	assertStatus(t, rec.Code, http.StatusSeeOther)

	stored, err := queries.GetPostBySlug(context.Background(), "shipped-post", false)
	if err != nil {
		t.Fatalf("GetPostBySlug: %v", err)
	}
	if !stored.PublishedAt.Valid {
		t.Error("published_at should be set when created as published")
	}
}

func TestCreateNewsFormPublished(t *testing.T) {
	h, queries := testHandler(t)

	rec := submitForm(t, h, h.CreateNews, "/dashboard/news", url.Values{
		"title":  {"Shipped News"},
		"status": {model.StatusPublished},
	})
	assertStatus(t, rec.Code, http.StatusSeeOther)

	stored, err := queries.GetNewsItemBySlug(context.Background(), "shipped-news", false)
	if err != nil {
		t.Fatalf("GetNewsItemBySlug: %v", err)
	}
	if !stored.PublishedAt.Valid {
		t.Error("published_at should be set when created as published")
	}
}

func TestProjectListView(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		view    string
		perPage int
	}{
		{"default is grid", "", viewGrid, store.PageSizeGrid},
		{"explicit grid", "?view=grid", viewGrid, store.PageSizeGrid},
		{"list", "?view=list", viewList, store.PageSizeList},
		{"unknown falls back to grid", "?view=cards", viewGrid, store.PageSizeGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/projects"+tt.query, nil)
			view, perPage := projectListView(req)
			if view != tt.view {
				t.Errorf("view = %q, want %q", view, tt.view)
			}
			if perPage != tt.perPage {
				t.Errorf("perPage = %d, want %d", perPage, tt.perPage)
			}
		})
	}
}

func TestListProjectsEchoesView(t *testing.T) {
	h, queries := testHandler(t)
	createDraftProject(t, queries, "Viewed", "viewed")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/projects?view=list", nil)
	req = requestWithSession(h.sessions, req)
	rec := httptest.NewRecorder()
	h.ListProjects(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `name="view" value="list"`) {
		t.Error("page should carry the selected view in the filter form")
	}
}
