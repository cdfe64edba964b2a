// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers: the staff dashboard,
// the public site, and the AJAX action endpoints they share.
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/Maimoon-github/Professional-Portfolio/internal/analytics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/cache"
	"github.com/Maimoon-github/Professional-Portfolio/internal/imaging"
	"github.com/Maimoon-github/Professional-Portfolio/internal/metrics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	queries   *store.Queries
	renderer  *render.Renderer
	sessions  *scs.SessionManager
	analytics *analytics.Service
	site      *cache.SiteCache
	images    *imaging.Processor
}

// Config holds handler dependencies.
type Config struct {
	Queries   *store.Queries
	Renderer  *render.Renderer
	Sessions  *scs.SessionManager
	Analytics *analytics.Service
	SiteCache *cache.SiteCache
	Images    *imaging.Processor
}

// New creates a Handler.
func New(cfg Config) *Handler {
	return &Handler{
		queries:   cfg.Queries,
		renderer:  cfg.Renderer,
		sessions:  cfg.Sessions,
		analytics: cfg.Analytics,
		site:      cfg.SiteCache,
		images:    cfg.Images,
	}
}

// render wraps the renderer, filling in the signed-in user and site
// settings, and logs render failures.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	data.User = middleware.GetUser(r)
	if site, err := h.site.Setting(r.Context()); err == nil {
		data.Site = site
	}
	if err := h.renderer.Render(w, r, name, data); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// recordAudit appends an audit entry for a content mutation and bumps
// the mutation counter. Audit failures are logged, not surfaced.
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
