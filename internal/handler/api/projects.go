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
	"github.com/Maimoon-github/Professional-Portfolio/internal/metrics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/internal/util"
)

// projectOrderFields whitelists the ?ordering= fields for projects.
var projectOrderFields = map[string]string{
	"title":        "title",
	"order":        "position",
	"created_at":   "created_at",
	"published_at": "published_at",
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Summary        string     `json:"summary"`
	Description    string     `json:"description"`
	HeroImage      string     `json:"hero_image,omitempty"`
	RepositoryURL  string     `json:"repository_url,omitempty"`
	LiveURL        string     `json:"live_url,omitempty"`
	CategoryID     *int64     `json:"category_id"`
	Order          int64      `json:"order"`
	Featured       bool       `json:"featured"`
	Status         string     `json:"status"`
	Tags           []string   `json:"tags"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PublishedAt    *time.Time `json:"published_at"`
}

func (h *Handler) projectResponse(ctx context.Context, p model.Project) ProjectResponse {
	tags, err := h.queries.GetTags(ctx, model.KindProject, p.ID)
	if err != nil {
		slog.Error("loading project tags", "project_id", p.ID, "error", err)
		tags = []string{}
	}

	resp := ProjectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Summary:        p.Summary,
		Description:    p.Description,
		HeroImage:      p.HeroImage,
		RepositoryURL:  p.RepositoryURL,
		LiveURL:        p.LiveURL,
		Order:          p.Position,
		Featured:       p.Featured,
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

// ProjectRequest is the request body for creating or updating a project.
type ProjectRequest struct {
	Title          string          `json:"title" validate:"required,max=200"`
	Slug           string          `json:"slug" validate:"omitempty,max=200"`
	Summary        string          `json:"summary" validate:"max=500"`
	Description    string          `json:"description"`
	HeroImage      string          `json:"hero_image" validate:"omitempty,max=500"`
	RepositoryURL  string          `json:"repository_url" validate:"omitempty,url"`
	LiveURL        string          `json:"live_url" validate:"omitempty,url"`
	CategoryID     *int64          `json:"category_id"`
	Order          int64           `json:"order"`
	Featured       bool            `json:"featured"`
	Status         string          `json:"status" validate:"omitempty,oneof=draft published"`
	Tags           json.RawMessage `json:"tags"`
	SEOTitle       string          `json:"seo_title" validate:"max=200"`
	SEODescription string          `json:"seo_description" validate:"max=500"`
}

// parseTags enforces the list-of-strings contract for the tags field.
// Absent or null means "leave/set empty"; anything other than a JSON
// array of strings is a validation error.
func parseTags(w http.ResponseWriter, raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, true
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		WriteValidationError(w, map[string]string{"tags": "must be a list of strings"})
		return nil, false
	}
	return tags, true
}

// ListProjects handles GET /api/projects. Non-staff callers see
// published projects only.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ordering, err := parseOrdering(r.URL.Query().Get("ordering"), projectOrderFields)
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

	total, err := h.queries.CountProjects(r.Context(), f)
	if err != nil {
		WriteInternalError(w, "Failed to count projects")
		return
	}

	meta, page := collectionMeta(f.Page, total, f.PerPage)
	f.Page = page

	projects, err := h.queries.ListProjects(r.Context(), f)
	if err != nil {
		WriteInternalError(w, "Failed to list projects")
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, h.projectResponse(r.Context(), p))
	}
	WriteSuccess(w, responses, meta)
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}

	project, err := h.queries.GetProjectByID(r.Context(), id)
	if err != nil || (!project.IsPublished() && !middleware.IsStaff(r)) {
		WriteNotFound(w, "Project not found")
		return
	}

	WriteSuccess(w, h.projectResponse(r.Context(), project), nil)
}

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
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

	project, err := h.queries.CreateProject(r.Context(), store.CreateProjectParams{
		Title:          req.Title,
		Slug:           slug,
		Summary:        req.Summary,
		Description:    req.Description,
		HeroImage:      req.HeroImage,
		RepositoryURL:  req.RepositoryURL,
		LiveURL:        req.LiveURL,
		CategoryID:     util.NullInt64FromPtr(req.CategoryID),
		Position:       req.Order,
		Featured:       req.Featured,
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
		slog.Error("creating project via API", "error", err)
		WriteInternalError(w, "Failed to create project")
		return
	}

	if project.IsPublished() {
		if project, err = h.queries.PublishProject(r.Context(), project.ID); err != nil {
			slog.Error("stamping project publish time", "project_id", project.ID, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindProject, project.ID, tags); err != nil {
		slog.Error("setting project tags via API", "project_id", project.ID, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindProject, project.ID, model.AuditActionCreate, project)
	WriteCreated(w, h.projectResponse(r.Context(), project))
}

// UpdateProject handles PUT /api/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}

	existing, err := h.queries.GetProjectByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Project not found")
		return
	}

	var req ProjectRequest
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

	project, err := h.queries.UpdateProject(r.Context(), store.UpdateProjectParams{
		ID:             id,
		Title:          req.Title,
		Slug:           slug,
		Summary:        req.Summary,
		Description:    req.Description,
		HeroImage:      req.HeroImage,
		RepositoryURL:  req.RepositoryURL,
		LiveURL:        req.LiveURL,
		CategoryID:     util.NullInt64FromPtr(req.CategoryID),
		Position:       req.Order,
		Featured:       req.Featured,
		Status:         status,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		}
		slog.Error("updating project via API", "project_id", id, "error", err)
		WriteInternalError(w, "Failed to update project")
		return
	}

	if existing.IsDraft() && project.IsPublished() {
		if project, err = h.queries.PublishProject(r.Context(), id); err != nil {
			slog.Error("stamping project publish time", "project_id", id, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindProject, id, tags); err != nil {
		slog.Error("setting project tags via API", "project_id", id, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindProject, id, model.AuditActionUpdate, project)
	WriteSuccess(w, h.projectResponse(r.Context(), project), nil)
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "project")
	if !ok {
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Project not found")
			return
		}
		slog.Error("deleting project via API", "project_id", id, "error", err)
		WriteInternalError(w, "Failed to delete project")
		return
	}

	h.recordAudit(r.Context(), r, model.KindProject, id, model.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}

// recordAudit appends an audit entry for an API mutation.
func (h *Handler) recordAudit(ctx context.Context, r *http.Request, kind string, entityID int64, action string, entity any) {
	var actorID sql.NullInt64
	if user := middleware.GetUser(r); user != nil {
		actorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	snapshot := "{}"
	if entity != nil {
		if data, err := json.Marshal(entity); err == nil {
			snapshot = string(data)
		}
	}

	if _, err := h.queries.AppendAudit(ctx, store.AppendAuditParams{
		EntityKind: kind,
		EntityID:   entityID,
		Action:     action,
		Snapshot:   snapshot,
		ActorID:    actorID,
	}); err != nil {
		slog.Error("appending audit entry", "kind", kind, "entity_id", entityID, "error", err)
	}

	metrics.ContentMutations.WithLabelValues(kind, action).Inc()
}
