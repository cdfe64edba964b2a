// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/internal/util"
)

// NewsListData holds data for the dashboard news list template.
type NewsListData struct {
	Items      []model.NewsItem
	Categories []model.Category
	Filter     store.ListFilter
	Pagination Pagination
}

// ListNews handles GET /dashboard/news.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	f := listFilterFromRequest(r, store.PageSizeList)

	total, err := h.queries.CountNewsItems(r.Context(), f)
	if err != nil {
		slog.Error("counting news items", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	items, err := h.queries.ListNewsItems(r.Context(), f)
	if err != nil {
		slog.Error("listing news items", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/news_list", render.TemplateData{
		Title: "News",
		Data: NewsListData{
			Items:      items,
			Categories: categories,
			Filter:     f,
			Pagination: pagination,
		},
	})
}

// NewsFormData holds data for the news item form template.
type NewsFormData struct {
	Item       *model.NewsItem
	Tags       string
	Categories []model.Category
	Errors     map[string]string
	IsEdit     bool
}

// NewNewsForm handles GET /dashboard/news/new.
func (h *Handler) NewNewsForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/news_form", render.TemplateData{
		Title: "New News Item",
		Data: NewsFormData{
			Categories: categories,
			Errors:     make(map[string]string),
		},
	})
}

func newsParamsFromForm(r *http.Request) (store.CreateNewsItemParams, []string, map[string]string) {
	title := strings.TrimSpace(r.FormValue("title"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(title)
	}

	status := r.FormValue("status")
	if status == "" {
		status = model.StatusDraft
	}

	params := store.CreateNewsItemParams{
		Title:      title,
		Slug:       slug,
		Summary:    strings.TrimSpace(r.FormValue("summary")),
		Content:    r.FormValue("content"),
		CategoryID: util.ParseNullInt64Positive(r.FormValue("category_id")),
		Link:       strings.TrimSpace(r.FormValue("link")),
		Important:  r.FormValue("important") == "on",
		Status:     status,
	}

	errs := make(map[string]string)
	if title == "" {
		errs["title"] = "Title is required"
	}
	if slug != "" && !util.IsValidSlug(slug) {
		errs["slug"] = "Slug may contain only lowercase letters, numbers, and hyphens"
	}
	if !model.IsValidStatus(status) {
		errs["status"] = "Unknown status"
	}

	return params, parseTagInput(r.FormValue("tags")), errs
}

// CreateNews handles POST /dashboard/news.
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/news/new", http.StatusSeeOther)
		return
	}

	params, tags, errs := newsParamsFromForm(r)
	if len(errs) > 0 {
		h.renderNewsFormErrors(w, r, nil, errs)
		return
	}

	if user := middleware.GetUser(r); user != nil {
		params.AuthorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	item, err := h.queries.CreateNewsItem(r.Context(), params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderNewsFormErrors(w, r, nil, map[string]string{"slug": "Slug is already in use"})
			return
		}
		slog.Error("creating news item", "error", err)
		h.renderer.SetFlash(r, "Error creating news item", "error")
		http.Redirect(w, r, "/dashboard/news/new", http.StatusSeeOther)
		return
	}

	if item.IsPublished() {
		if item, err = h.queries.PublishNewsItem(r.Context(), item.ID); err != nil {
			slog.Error("stamping news publish time", "news_id", item.ID, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindNews, item.ID, tags); err != nil {
		slog.Error("setting news tags", "news_id", item.ID, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindNews, item.ID, model.AuditActionCreate, item)
	h.renderer.SetFlash(r, "News item created", "success")
	http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
}

// EditNewsForm handles GET /dashboard/news/{id}.
func (h *Handler) EditNewsForm(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid news item ID", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	item, err := h.queries.GetNewsItemByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "News item not found", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	tags, err := h.queries.GetTags(r.Context(), model.KindNews, id)
	if err != nil {
		slog.Error("loading news tags", "news_id", id, "error", err)
	}
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/news_form", render.TemplateData{
		Title: "Edit News Item",
		Data: NewsFormData{
			Item:       &item,
			Tags:       strings.Join(tags, ", "),
			Categories: categories,
			Errors:     make(map[string]string),
			IsEdit:     true,
		},
	})
}

// UpdateNews handles POST /dashboard/news/{id}.
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid news item ID", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	existing, err := h.queries.GetNewsItemByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "News item not found", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	params, tags, errs := newsParamsFromForm(r)
	if len(errs) > 0 {
		h.renderNewsFormErrors(w, r, &existing, errs)
		return
	}

	wasDraft := !existing.IsPublished()

	item, err := h.queries.UpdateNewsItem(r.Context(), store.UpdateNewsItemParams{
		ID:         id,
		Title:      params.Title,
		Slug:       params.Slug,
		Summary:    params.Summary,
		Content:    params.Content,
		CategoryID: params.CategoryID,
		Link:       params.Link,
		Important:  params.Important,
		Status:     params.Status,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderNewsFormErrors(w, r, &existing, map[string]string{"slug": "Slug is already in use"})
			return
		}
		slog.Error("updating news item", "news_id", id, "error", err)
		h.renderer.SetFlash(r, "Error updating news item", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	if wasDraft && item.IsPublished() {
		if item, err = h.queries.PublishNewsItem(r.Context(), id); err != nil {
			slog.Error("publishing news item", "news_id", id, "error", err)
		}
	}

	if err := h.queries.SetTags(r.Context(), model.KindNews, id, tags); err != nil {
		slog.Error("setting news tags", "news_id", id, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindNews, id, model.AuditActionUpdate, item)
	h.renderer.SetFlash(r, "News item updated", "success")
	http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
}

// DeleteNews handles POST /dashboard/news/{id}/delete.
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid news item ID", "error")
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeleteNewsItem(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.renderer.SetFlash(r, "News item not found", "error")
		} else {
			slog.Error("deleting news item", "news_id", id, "error", err)
			h.renderer.SetFlash(r, "Error deleting news item", "error")
		}
		http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindNews, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "News item deleted", "success")
	http.Redirect(w, r, "/dashboard/news", http.StatusSeeOther)
}

func (h *Handler) renderNewsFormErrors(w http.ResponseWriter, r *http.Request, item *model.NewsItem, errs map[string]string) {
	categories, _ := h.queries.ListCategories(r.Context())

	title := "New News Item"
	if item != nil {
		title = "Edit News Item"
	}
	h.render(w, r, "dashboard/news_form", render.TemplateData{
		Title: title,
		Data: NewsFormData{
			Item:       item,
			Tags:       r.FormValue("tags"),
			Categories: categories,
			Errors:     errs,
			IsEdit:     item != nil,
		},
	})
}
