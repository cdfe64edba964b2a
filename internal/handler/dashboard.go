// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Maimoon-github/Professional-Portfolio/internal/analytics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
)

// recentItemLimit bounds the recent-activity lists on the dashboard home.
const recentItemLimit = 5

// eventPanelLimit bounds the system events panel on the analytics page.
const eventPanelLimit = 20

// DashboardHomeData holds data for the dashboard home template.
type DashboardHomeData struct {
	Overview       analytics.Overview
	RecentProjects []model.Project
	RecentPosts    []model.Post
	RecentNews     []model.NewsItem
	RecentMessages []model.ContactMessage
	RecentAudit    []model.AuditEntry
	Sparkline      analytics.Sparkline
	UnreadMessages int64
}

// DashboardHome handles GET /dashboard.
func (h *Handler) DashboardHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.analytics.Overview(ctx)
	if err != nil {
		slog.Error("computing dashboard overview", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := DashboardHomeData{
		Overview:       overview,
		UnreadMessages: overview.UnreadMessages,
	}
	if data.RecentProjects, err = h.queries.RecentProjects(ctx, recentItemLimit); err != nil {
		slog.Error("listing recent projects", "error", err)
	}
	if data.RecentPosts, err = h.queries.RecentPosts(ctx, recentItemLimit); err != nil {
		slog.Error("listing recent posts", "error", err)
	}
	if data.RecentNews, err = h.queries.RecentNewsItems(ctx, recentItemLimit); err != nil {
		slog.Error("listing recent news", "error", err)
	}
	if data.RecentMessages, err = h.queries.RecentContactMessages(ctx, recentItemLimit); err != nil {
		slog.Error("listing recent messages", "error", err)
	}
	if data.RecentAudit, err = h.queries.RecentAudit(ctx, 10); err != nil {
		slog.Error("listing recent audit entries", "error", err)
	}
	if data.Sparkline, err = h.analytics.HomeSparkline(ctx); err != nil {
		slog.Error("computing home sparkline", "error", err)
	}

	h.render(w, r, "dashboard/home", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	})
}

// AnalyticsPageData holds data for the analytics template.
type AnalyticsPageData struct {
	Overview analytics.Overview
	Events   []model.Event
}

// AnalyticsPage handles GET /dashboard/analytics.
func (h *Handler) AnalyticsPage(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analytics.Overview(r.Context())
	if err != nil {
		slog.Error("computing analytics overview", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	events, err := h.queries.RecentEvents(r.Context(), eventPanelLimit)
	if err != nil {
		slog.Error("listing recent events", "error", err)
	}

	h.render(w, r, "dashboard/analytics", render.TemplateData{
		Title: "Analytics",
		Data: AnalyticsPageData{
			Overview: overview,
			Events:   events,
		},
	})
}

// AnalyticsTrends handles GET /dashboard/analytics/trends. It returns
// creation trends and category breakdowns as JSON for the dashboard
// charts. ?range= selects the lookback window in days, ?kind= the
// entity kind.
func (h *Handler) AnalyticsTrends(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("range"))
	rng := analytics.ParseRange(days)

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = model.KindProject
	}

	trend, err := h.analytics.Trend(r.Context(), kind, rng)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid content type")
		return
	}

	categories, err := h.analytics.TopCategories(r.Context(), kind)
	if err != nil {
		slog.Error("computing category breakdown", "kind", kind, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"trend":      trend,
		"categories": categories,
	})
}
