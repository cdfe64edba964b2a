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

var postOrderFields = map[string]string{
	"title":        "title",
	"created_at":   "created_at",
	"published_at": "published_at",
}

// PostResponse represents a blog post in API responses.
type PostResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt,omitempty"`
	Content        string     `json:"content"`
	CoverImage     string     `json:"cover_image,omitempty"`
	CategoryID     *int64     `json:"category_id"`
	Status         string     `json:"status"`
	Tags           []string   `json:"tags"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PublishedAt    *time.Time `json:"published_at"`
}

func (h *Handler) postResponse(ctx context.Context, p model.Post) PostResponse {
	tags, err := h.queries.GetTags(ctx, model.KindPost, p.ID)
	if err != nil {
		slog.Error("loading post tags", "post_id", p.ID, "error", err)
		tags = []string{}
	}

	resp := PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Excerpt,
		Content:        p.Content,
		CoverImage:     p.CoverImage,
		Status:         p.Status,
		Tags:           tags,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.CategoryID.Valid {
		resp.CategoryID = &p.CategoryID.Int64
	}
	if p.PublishedAt.Valid {
		t := p.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

// PostRequest is the request body for creating or updating a blog post.
type PostRequest struct {
	Title          string          `json:"title" validate:"required,max=200"`
	Slug           string          `json:"slug" validate:"omitempty,max=200"`
	Excerpt        string          `json:"excerpt" validate:"max=500"`
	Content        string          `json:"content" validate:"required"`
	CoverImage     string          `json:"cover_image" validate:"omitempty,max=500"`
	CategoryID     *int64          `json:"category_id"`
	Status         string          `json:"status" validate:"omitempty,oneof=draft published"`
	Tags           json.RawMessage `json:"tags"`
	SEOTitle       string          `json:"seo_title" validate:"max=200"`
	SEODescription string          `json:"seo_description" validate:"max=500"`
}

// ListPosts handles GET /api/posts.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ordering, err := parseOrdering(r.URL.Query().Get("ordering"), postOrderFields)
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

	total, err := h.queries.CountPosts(r.Context(), f)
	if err != nil {
		WriteInternalError(w, "Failed to count posts")
		return
	}

	meta, page := collectionMeta(f.Page, total, f.PerPage)
	f.Page = page

	posts, err := h.queries.ListPosts(r.Context(), f)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, h.postResponse(r.Context(), p))
	}
	WriteSuccess(w, responses, meta)
}

// GetPost handles GET /api/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "post")
	if !ok {
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil || (!post.IsPublished() && !middleware.IsStaff(r)) {
		WriteNotFound(w, "Post not found")
		return
	}

	WriteSuccess(w, h.postResponse(r.Context(), post), nil)
}

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
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

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:          req.Title,
		Slug:           slug,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		CoverImage:     req.CoverImage,
		CategoryID:     util.NullInt64FromPtr(req.CategoryID),
		Status:         status,
		AuthorID:       authorID,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		}
		slog.Error("creating post via API", "error", err)
		WriteInternalError(w, "Failed to create post")
		return
	}

	if post.IsPublished() {
		if post, err = h.queries.PublishPost(r.Context(), post.ID); err != nil {
			slog.Error("stamping post publish time", "post_id", post.ID, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindPost, post.ID, tags); err != nil {
		slog.Error("setting post tags via API", "post_id", post.ID, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindPost, post.ID, model.AuditActionCreate, post)
	WriteCreated(w, h.postResponse(r.Context(), post))
}

// UpdatePost handles PUT /api/posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "post")
	if !ok {
		return
	}

	existing, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Post not found")
		return
	}

	var req PostRequest
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

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:             id,
		Title:          req.Title,
		Slug:           slug,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		CoverImage:     req.CoverImage,
		CategoryID:     util.NullInt64FromPtr(req.CategoryID),
		Status:         status,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		}
		slog.Error("updating post via API", "post_id", id, "error", err)
		WriteInternalError(w, "Failed to update post")
		return
	}

	if !existing.IsPublished() && post.IsPublished() {
		if post, err = h.queries.PublishPost(r.Context(), id); err != nil {
			slog.Error("stamping post publish time", "post_id", id, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindPost, id, tags); err != nil {
		slog.Error("setting post tags via API", "post_id", id, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindPost, id, model.AuditActionUpdate, post)
	WriteSuccess(w, h.postResponse(r.Context(), post), nil)
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "post")
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Post not found")
			return
		}
		slog.Error("deleting post via API", "post_id", id, "error", err)
		WriteInternalError(w, "Failed to delete post")
		return
	}

	h.recordAudit(r.Context(), r, model.KindPost, id, model.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}
