// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/internal/util"
)

// SettingsData holds data for the settings template: the singleton
// site settings plus the social links and categories managed alongside.
type SettingsData struct {
	Setting     model.SiteSetting
	SocialLinks []model.SocialLink
	Categories  []model.Category
}

// SettingsPage handles GET /dashboard/settings.
func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	setting, err := h.queries.EnsureSiteSetting(r.Context())
	if err != nil {
		slog.Error("loading site settings", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	links, err := h.queries.ListSocialLinks(r.Context())
	if err != nil {
		slog.Error("listing social links", "error", err)
	}
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/settings", render.TemplateData{
		Title: "Settings",
		Data: SettingsData{
			Setting:     setting,
			SocialLinks: links,
			Categories:  categories,
		},
	})
}

// UpdateSettings handles POST /dashboard/settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	siteName := strings.TrimSpace(r.FormValue("site_name"))
	if siteName == "" {
		h.renderer.SetFlash(r, "Site name is required", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	setting, err := h.queries.UpdateSiteSetting(r.Context(), store.SiteSettingParams{
		SiteName:          siteName,
		Tagline:           strings.TrimSpace(r.FormValue("tagline")),
		Logo:              strings.TrimSpace(r.FormValue("logo")),
		Favicon:           strings.TrimSpace(r.FormValue("favicon")),
		MetaDescription:   strings.TrimSpace(r.FormValue("meta_description")),
		GoogleAnalyticsID: strings.TrimSpace(r.FormValue("google_analytics_id")),
		ContactEmail:      strings.TrimSpace(r.FormValue("contact_email")),
	})
	if err != nil {
		slog.Error("updating site settings", "error", err)
		h.renderer.SetFlash(r, "Error updating settings", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	h.site.Invalidate(r.Context())
	h.recordAudit(r.Context(), r, model.KindSetting, setting.ID, model.AuditActionUpdate, setting)
	h.renderer.SetFlash(r, "Settings saved", "success")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

// CreateSocialLink handles POST /dashboard/settings/social.
func (h *Handler) CreateSocialLink(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	platform := strings.TrimSpace(r.FormValue("platform"))
	url := strings.TrimSpace(r.FormValue("url"))
	if platform == "" || url == "" {
		h.renderer.SetFlash(r, "Platform and URL are required", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	position, _ := strconv.ParseInt(r.FormValue("order"), 10, 64)

	link, err := h.queries.CreateSocialLink(r.Context(), store.CreateSocialLinkParams{
		Platform: platform,
		URL:      url,
		Icon:     strings.TrimSpace(r.FormValue("icon")),
		Position: position,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderer.SetFlash(r, "That social link already exists", "error")
		} else {
			slog.Error("creating social link", "error", err)
			h.renderer.SetFlash(r, "Error creating social link", "error")
		}
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	h.site.Invalidate(r.Context())
	h.recordAudit(r.Context(), r, model.KindSocialLink, link.ID, model.AuditActionCreate, link)
	h.renderer.SetFlash(r, "Social link added", "success")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

// UpdateSocialLink handles POST /dashboard/settings/social/{id}.
func (h *Handler) UpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid social link ID", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	position, _ := strconv.ParseInt(r.FormValue("order"), 10, 64)

	link, err := h.queries.UpdateSocialLink(r.Context(), store.UpdateSocialLinkParams{
		ID:       id,
		Platform: strings.TrimSpace(r.FormValue("platform")),
		URL:      strings.TrimSpace(r.FormValue("url")),
		Icon:     strings.TrimSpace(r.FormValue("icon")),
		Position: position,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderer.SetFlash(r, "That social link already exists", "error")
		} else {
			h.renderer.SetFlash(r, "Social link not found", "error")
		}
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	h.site.Invalidate(r.Context())
	h.recordAudit(r.Context(), r, model.KindSocialLink, id, model.AuditActionUpdate, link)
	h.renderer.SetFlash(r, "Social link updated", "success")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

// DeleteSocialLink handles POST /dashboard/settings/social/{id}/delete.
func (h *Handler) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid social link ID", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeleteSocialLink(r.Context(), id); err != nil {
		slog.Error("deleting social link", "link_id", id, "error", err)
		h.renderer.SetFlash(r, "Error deleting social link", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	h.site.Invalidate(r.Context())
	h.recordAudit(r.Context(), r, model.KindSocialLink, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "Social link deleted", "success")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

// CreateCategory handles POST /dashboard/settings/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		h.renderer.SetFlash(r, "Category name is required", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}
	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(name)
	}

	category, err := h.queries.CreateCategory(r.Context(), name, slug)
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderer.SetFlash(r, "A category with that slug already exists", "error")
		} else {
			slog.Error("creating category", "error", err)
			h.renderer.SetFlash(r, "Error creating category", "error")
		}
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindCategory, category.ID, model.AuditActionCreate, category)
	h.renderer.SetFlash(r, "Category created", "success")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

// DeleteCategory handles POST /dashboard/settings/categories/{id}/delete.
// Content referencing the category keeps existing with a null category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid category ID", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeleteCategory(r.Context(), id); err != nil {
		slog.Error("deleting category", "category_id", id, "error", err)
		h.renderer.SetFlash(r, "Error deleting category", "error")
		http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindCategory, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "Category deleted", "success")
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}
