// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Maimoon-github/Professional-Portfolio/internal/handler"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/internal/util"
)

var newsOrderFields = map[string]string{
	"title":        "title",
	"created_at":   "created_at",
	"published_at": "published_at",
}

// NewsResponse represents a news item in API responses.
type NewsResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content,omitempty"`
	CategoryID  *int64     `json:"category_id"`
	Link        string     `json:"link,omitempty"`
	Important   bool       `json:"important"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

func (h *Handler) newsResponse(ctx context.Context, n model.NewsItem) NewsResponse {
	tags, err := h.queries.GetTags(ctx, model.KindNews, n.ID)
	if err != nil {
		slog.Error("loading news tags", "news_id", n.ID, "error", err)
		tags = []string{}
	}

	resp := NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Slug:      n.Slug,
		Summary:   n.Summary,
		Content:   n.Content,
		Link:      n.Link,
		Important: n.Important,
		Status:    n.Status,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.CategoryID.Valid {
		resp.CategoryID = &n.CategoryID.Int64
	}
	if n.PublishedAt.Valid {
		t := n.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

// NewsRequest is the request body for creating or updating a news item.
type NewsRequest struct {
	Title      string          `json:"title" validate:"required,max=200"`
	Slug       string          `json:"slug" validate:"omitempty,max=200"`
	Summary    string          `json:"summary" validate:"max=500"`
	Content    string          `json:"content"`
	CategoryID *int64          `json:"category_id"`
	Link       string          `json:"link" validate:"omitempty,url"`
	Important  bool            `json:"important"`
	Status     string          `json:"status" validate:"omitempty,oneof=draft published"`
	Tags       json.RawMessage `json:"tags"`
}

// ListNews handles GET /api/news.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ordering, err := parseOrdering(r.URL.Query().Get("ordering"), newsOrderFields)
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	f := store.ListFilter{
		Status:  model.StatusPublished,
		Search:  strings.TrimSpace(r.URL.Query().Get("search")),
		Page:    handler.ParsePageParam(r),
		PerPage: parsePerPage(r),
		OrderBy: ordering,
	}
	if middleware.IsStaff(r) {
		f.Status = r.URL.Query().Get("status")
	}

	total, err := h.queries.CountNewsItems(r.Context(), f)
	if err != nil {
		WriteInternalError(w, "Failed to count news items")
		return
	}

	meta, page := collectionMeta(f.Page, total, f.PerPage)
	f.Page = page

	items, err := h.queries.ListNewsItems(r.Context(), f)
	if err != nil {
		WriteInternalError(w, "Failed to list news items")
		return
	}

	responses := make([]NewsResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, h.newsResponse(r.Context(), n))
	}
	WriteSuccess(w, responses, meta)
}

// GetNews handles GET /api/news/{id}.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "news item")
	if !ok {
		return
	}

	item, err := h.queries.GetNewsItemByID(r.Context(), id)
	if err != nil || (!item.IsPublished() && !middleware.IsStaff(r)) {
		WriteNotFound(w, "News item not found")
		return
	}

	WriteSuccess(w, h.newsResponse(r.Context(), item), nil)
}

// CreateNews handles POST /api/news.
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req NewsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	tags, ok := parseTags(w, req.Tags)
	if !ok {
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}
	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	var authorID sql.NullInt64
	if user := middleware.GetUser(r); user != nil {
		authorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	item, err := h.queries.CreateNewsItem(r.Context(), store.CreateNewsItemParams{
		Title:      req.Title,
		Slug:       slug,
		Summary:    req.Summary,
		Content:    req.Content,
		CategoryID: util.NullInt64FromPtr(req.CategoryID),
		Link:       req.Link,
		Important:  req.Important,
		Status:     status,
		AuthorID:   authorID,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		}
		slog.Error("creating news item via API", "error", err)
		WriteInternalError(w, "Failed to create news item")
		return
	}

	if item.IsPublished() {
		if item, err = h.queries.PublishNewsItem(r.Context(), item.ID); err != nil {
			slog.Error("stamping news publish time", "news_id", item.ID, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindNews, item.ID, tags); err != nil {
		slog.Error("setting news tags via API", "news_id", item.ID, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindNews, item.ID, model.AuditActionCreate, item)
	WriteCreated(w, h.newsResponse(r.Context(), item))
}

// UpdateNews handles PUT /api/news/{id}.
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "news item")
	if !ok {
		return
	}

	existing, err := h.queries.GetNewsItemByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "News item not found")
		return
	}

	var req NewsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	tags, ok := parseTags(w, req.Tags)
	if !ok {
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = existing.Slug
	}
	status := req.Status
	if status == "" {
		status = existing.Status
	}

	item, err := h.queries.UpdateNewsItem(r.Context(), store.UpdateNewsItemParams{
		ID:         id,
		Title:      req.Title,
		Slug:       slug,
		Summary:    req.Summary,
		Content:    req.Content,
		CategoryID: util.NullInt64FromPtr(req.CategoryID),
		Link:       req.Link,
		Important:  req.Important,
		Status:     status,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		}
		slog.Error("updating news item via API", "news_id", id, "error", err)
		WriteInternalError(w, "Failed to update news item")
		return
	}

	if !existing.IsPublished() && item.IsPublished() {
		if item, err = h.queries.PublishNewsItem(r.Context(), id); err != nil {
			slog.Error("stamping news publish time", "news_id", id, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindNews, id, tags); err != nil {
		slog.Error("setting news tags via API", "news_id", id, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindNews, id, model.AuditActionUpdate, item)
	WriteSuccess(w, h.newsResponse(r.Context(), item), nil)
}

// DeleteNews handles DELETE /api/news/{id}.
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "news item")
	if !ok {
		return
	}

	if err := h.queries.DeleteNewsItem(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "News item not found")
			return
		}
		slog.Error("deleting news item via API", "news_id", id, "error", err)
		WriteInternalError(w, "Failed to delete news item")
		return
	}

	h.recordAudit(r.Context(), r, model.KindNews, id, model.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}
