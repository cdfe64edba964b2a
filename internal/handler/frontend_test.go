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

func TestHome(t *testing.T) {
	h, queries := testHandler(t)

	project := createDraftProject(t, queries, "Shiny Thing", "shiny-thing")
	if _, err := queries.PublishProject(context.Background(), project.ID); err != nil {
		t.Fatalf("PublishProject: %v", err)
	}
	if _, err := queries.ToggleProjectFeatured(context.Background(), project.ID); err != nil {
		t.Fatalf("ToggleProjectFeatured: %v", err)
	}

	t.Run("renders featured work", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = requestWithSession(h.sessions, req)
		rec := httptest.NewRecorder()
		h.Home(rec, req)

		assertStatus(t, rec.Code, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "Shiny Thing") {
			t.Error("home page should list the featured project")
		}
	})

	t.Run("unknown path is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
		req = requestWithSession(h.sessions, req)
		rec := httptest.NewRecorder()
		h.Home(rec, req)

		assertStatus(t, rec.Code, http.StatusNotFound)
	})
}

func TestPublicProjectDetail(t *testing.T) {
	h, queries := testHandler(t)

	published := createDraftProject(t, queries, "Public Project", "public-project")
	if _, err := queries.PublishProject(context.Background(), published.ID); err != nil {
		t.Fatalf("PublishProject: %v", err)
	}
	draft := createDraftProject(t, queries, "Hidden Draft", "hidden-draft")

	get := func(t *testing.T, slug, query string, staff bool) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/projects/"+slug+query, nil)
		req = requestWithSession(h.sessions, req)
		req = requestWithURLParams(req, map[string]string{"slug": slug})
		if staff {
			req = requestWithUser(req, createTestUser(t, queries))
		}
		rec := httptest.NewRecorder()
		h.PublicProjectDetail(rec, req)
		return rec
	}

	t.Run("published project renders", func(t *testing.T) {
		rec := get(t, published.Slug, "", false)
		assertStatus(t, rec.Code, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "Public Project") {
			t.Error("body should contain the project title")
		}
	})

	t.Run("draft is a 404 for visitors", func(t *testing.T) {
		rec := get(t, draft.Slug, "", false)
		assertStatus(t, rec.Code, http.StatusNotFound)
	})

	t.Run("missing slug is a 404", func(t *testing.T) {
		rec := get(t, "does-not-exist", "", false)
		assertStatus(t, rec.Code, http.StatusNotFound)
	})

	t.Run("staff preview sees the draft", func(t *testing.T) {
		rec := get(t, draft.Slug, "?preview=1", true)
		assertStatus(t, rec.Code, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "Hidden Draft") {
			t.Error("staff preview should render the draft")
		}
	})
}

func TestSubmitContact(t *testing.T) {
	h, queries := testHandler(t)

	submit := func(t *testing.T, form url.Values) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req = requestWithSession(h.sessions, req)
		rec := httptest.NewRecorder()
		h.SubmitContact(rec, req)
		return rec
	}

	countMessages := func(t *testing.T) int64 {
		t.Helper()
		count, err := queries.CountContactMessages(context.Background(), store.MessageFilter{Status: store.FilterAll})
		if err != nil {
			t.Fatalf("CountContactMessages: %v", err)
		}
		return count
	}

	t.Run("valid submission", func(t *testing.T) {
		rec := submit(t, url.Values{
			"name":    {"Visitor"},
			"email":   {"visitor@example.com"},
			"subject": {"Hi"},
			"message": {"I liked the projects page."},
		})

		assertStatus(t, rec.Code, http.StatusSeeOther)
		if loc := rec.Header().Get("Location"); loc != "/contact/" {
			t.Errorf("Location = %q, want /contact/", loc)
		}
		if got := countMessages(t); got != 1 {
			t.Errorf("message count = %d, want 1", got)
		}

		unread, err := queries.ListContactMessages(context.Background(), store.MessageFilter{Status: store.FilterAll, Page: 1, PerPage: 10})
		if err != nil {
			t.Fatalf("ListContactMessages: %v", err)
		}
		if len(unread) != 1 || unread[0].IsRead {
			t.Error("new message should be stored unread")
		}
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		before := countMessages(t)
		submit(t, url.Values{"name": {"No Message"}, "email": {"x@example.com"}})
		if got := countMessages(t); got != before {
			t.Errorf("message count = %d, want %d", got, before)
		}
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		before := countMessages(t)
		submit(t, url.Values{
			"name":    {"Bad Email"},
			"email":   {"not-an-address"},
			"message": {"hello"},
		})
		if got := countMessages(t); got != before {
			t.Errorf("message count = %d, want %d", got, before)
		}
	})
}

func TestPublicBlogHidesDrafts(t *testing.T) {
	h, queries := testHandler(t)

	ctx := context.Background()
	published, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title:   "Published Post",
		Slug:    "published-post",
		Content: "Body",
		Status:  model.StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := queries.PublishPost(ctx, published.ID); err != nil {
		t.Fatalf("PublishPost: %v", err)
	}
	if _, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title:   "Draft Post",
		Slug:    "draft-post",
		Content: "Body",
		Status:  model.StatusDraft,
	}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/blog/", nil)
	req = requestWithSession(h.sessions, req)
	rec := httptest.NewRecorder()
	h.PublicBlog(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "Published Post") {
		t.Error("published post should be listed")
	}
	if strings.Contains(body, "Draft Post") {
		t.Error("draft post should not be listed publicly")
	}
}
