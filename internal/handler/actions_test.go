// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

func postForm(t *testing.T, handlerFunc http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func createDraftProject(t *testing.T, queries *store.Queries, title, slug string) model.Project {
	t.Helper()

	project, err := queries.CreateProject(context.Background(), store.CreateProjectParams{
		Title:  title,
		Slug:   slug,
		Status: model.StatusDraft,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return project
}

func TestToggleFeatured(t *testing.T) {
	h, queries := testHandler(t)
	project := createDraftProject(t, queries, "Toggle Me", "toggle-me")

	t.Run("missing id", func(t *testing.T) {
		rec := postForm(t, h.ToggleFeatured, url.Values{})
		assertStatus(t, rec.Code, http.StatusBadRequest)
		body := decodeJSON(t, rec)
		if body["error"] != "Missing required parameters" {
			t.Errorf("error = %v, want Missing required parameters", body["error"])
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		rec := postForm(t, h.ToggleFeatured, url.Values{"project_id": {"9999"}})
		assertStatus(t, rec.Code, http.StatusNotFound)
	})

	t.Run("get is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.ToggleFeatured(rec, req)
		assertStatus(t, rec.Code, http.StatusMethodNotAllowed)
	})

	t.Run("flips and flips back", func(t *testing.T) {
		form := url.Values{"project_id": {strconv.FormatInt(project.ID, 10)}}

		rec := postForm(t, h.ToggleFeatured, form)
		assertStatus(t, rec.Code, http.StatusOK)
		body := decodeJSON(t, rec)
		if body["featured"] != true {
			t.Errorf("featured = %v, want true", body["featured"])
		}

		rec = postForm(t, h.ToggleFeatured, form)
		body = decodeJSON(t, rec)
		if body["featured"] != false {
			t.Errorf("featured = %v, want false", body["featured"])
		}
	})
}

func TestToggleStatus(t *testing.T) {
	h, queries := testHandler(t)
	project := createDraftProject(t, queries, "Status Flip", "status-flip")

	t.Run("invalid content type", func(t *testing.T) {
		rec := postForm(t, h.ToggleStatus, url.Values{
			"id":           {"1"},
			"content_type": {"widget"},
		})
		assertStatus(t, rec.Code, http.StatusBadRequest)
		body := decodeJSON(t, rec)
		if body["error"] != "Invalid content type" {
			t.Errorf("error = %v, want Invalid content type", body["error"])
		}
	})

	t.Run("draft publishes and stamps published_at", func(t *testing.T) {
		rec := postForm(t, h.ToggleStatus, url.Values{
			"id": {strconv.FormatInt(project.ID, 10)},
		})
		assertStatus(t, rec.Code, http.StatusOK)
		body := decodeJSON(t, rec)
		if body["status"] != model.StatusPublished {
			t.Errorf("status = %v, want published", body["status"])
		}

		stored, err := queries.GetProjectByID(context.Background(), project.ID)
		if err != nil {
			t.Fatalf("GetProjectByID: %v", err)
		}
		if !stored.PublishedAt.Valid {
			t.Error("published_at should be set after publishing")
		}
	})

	t.Run("published collapses to draft but keeps published_at", func(t *testing.T) {
		rec := postForm(t, h.ToggleStatus, url.Values{
			"id": {strconv.FormatInt(project.ID, 10)},
		})
		body := decodeJSON(t, rec)
		if body["status"] != model.StatusDraft {
			t.Errorf("status = %v, want draft", body["status"])
		}

		stored, err := queries.GetProjectByID(context.Background(), project.ID)
		if err != nil {
			t.Fatalf("GetProjectByID: %v", err)
		}
		if !stored.PublishedAt.Valid {
			t.Error("published_at should survive unpublishing")
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		rec := postForm(t, h.ToggleStatus, url.Values{"id": {"9999"}})
		assertStatus(t, rec.Code, http.StatusNotFound)
	})
}

func TestMarkMessageRead(t *testing.T) {
	h, queries := testHandler(t)

	message, err := queries.CreateContactMessage(context.Background(), store.CreateContactMessageParams{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Hello there",
	})
	if err != nil {
		t.Fatalf("CreateContactMessage: %v", err)
	}

	form := url.Values{"message_id": {strconv.FormatInt(message.ID, 10)}}

	rec := postForm(t, h.MarkMessageRead, form)
	assertStatus(t, rec.Code, http.StatusOK)
	body := decodeJSON(t, rec)
	if body["is_read"] != true {
		t.Errorf("is_read = %v, want true", body["is_read"])
	}

	rec = postForm(t, h.MarkMessageRead, form)
	body = decodeJSON(t, rec)
	if body["is_read"] != false {
		t.Errorf("is_read = %v, want false", body["is_read"])
	}
}

func TestBulkAction(t *testing.T) {
	h, queries := testHandler(t)

	t.Run("missing parameters", func(t *testing.T) {
		cases := []url.Values{
			{},
			{"action": {"publish"}},
			{"action": {"publish"}, "content_type": {"project"}},
			{"content_type": {"project"}, "ids": {"1"}},
		}
		for _, form := range cases {
			rec := postForm(t, h.BulkAction, form)
			assertStatus(t, rec.Code, http.StatusBadRequest)
			body := decodeJSON(t, rec)
			if body["error"] != "Missing required parameters" {
				t.Errorf("form %v: error = %v, want Missing required parameters", form, body["error"])
			}
		}
	})

	t.Run("invalid content type", func(t *testing.T) {
		rec := postForm(t, h.BulkAction, url.Values{
			"action":       {"publish"},
			"content_type": {"widget"},
			"ids":          {"1"},
		})
		assertStatus(t, rec.Code, http.StatusBadRequest)
		body := decodeJSON(t, rec)
		if body["error"] != "Invalid content type" {
			t.Errorf("error = %v, want Invalid content type", body["error"])
		}
	})

	t.Run("feature rejected for non-projects", func(t *testing.T) {
		rec := postForm(t, h.BulkAction, url.Values{
			"action":       {"feature"},
			"content_type": {"blog"},
			"ids":          {"1"},
		})
		assertStatus(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("publish counts requested ids", func(t *testing.T) {
		a := createDraftProject(t, queries, "Bulk A", "bulk-a")
		b := createDraftProject(t, queries, "Bulk B", "bulk-b")

		rec := postForm(t, h.BulkAction, url.Values{
			"action":       {"publish"},
			"content_type": {"project"},
			"item_ids":     {strconv.FormatInt(a.ID, 10), strconv.FormatInt(b.ID, 10), "9999"},
		})
		assertStatus(t, rec.Code, http.StatusOK)
		body := decodeJSON(t, rec)
		// The count reflects the request, including unknown ids.
		if body["affected_count"] != float64(3) {
			t.Errorf("affected_count = %v, want 3", body["affected_count"])
		}

		for _, id := range []int64{a.ID, b.ID} {
			stored, err := queries.GetProjectByID(context.Background(), id)
			if err != nil {
				t.Fatalf("GetProjectByID(%d): %v", id, err)
			}
			if stored.Status != model.StatusPublished {
				t.Errorf("project %d status = %q, want published", id, stored.Status)
			}
			if !stored.PublishedAt.Valid {
				t.Errorf("project %d should have published_at set", id)
			}
		}
	})

	t.Run("delete removes records", func(t *testing.T) {
		p := createDraftProject(t, queries, "Bulk Delete", "bulk-delete")

		rec := postForm(t, h.BulkAction, url.Values{
			"action":       {"delete"},
			"content_type": {"project"},
			"ids":          {strconv.FormatInt(p.ID, 10)},
		})
		assertStatus(t, rec.Code, http.StatusOK)

		if _, err := queries.GetProjectByID(context.Background(), p.ID); err == nil {
			t.Error("project should be gone after bulk delete")
		}
	})

	t.Run("feature sets project flags", func(t *testing.T) {
		p := createDraftProject(t, queries, "Bulk Feature", "bulk-feature")

		rec := postForm(t, h.BulkAction, url.Values{
			"action":       {"feature"},
			"content_type": {"project"},
			"item_ids":     {strconv.FormatInt(p.ID, 10)},
		})
		assertStatus(t, rec.Code, http.StatusOK)

		stored, err := queries.GetProjectByID(context.Background(), p.ID)
		if err != nil {
			t.Fatalf("GetProjectByID: %v", err)
		}
		if !stored.Featured {
			t.Error("project should be featured")
		}
	})

	t.Run("ids field accepted as alias", func(t *testing.T) {
		p := createDraftProject(t, queries, "Bulk Alias", "bulk-alias")

		rec := postForm(t, h.BulkAction, url.Values{
			"action":       {"publish"},
			"content_type": {"project"},
			"ids":          {strconv.FormatInt(p.ID, 10)},
		})
		assertStatus(t, rec.Code, http.StatusOK)

		stored, err := queries.GetProjectByID(context.Background(), p.ID)
		if err != nil {
			t.Fatalf("GetProjectByID: %v", err)
		}
		if stored.Status != model.StatusPublished {
			t.Errorf("status = %q, want published", stored.Status)
		}
	})
}
