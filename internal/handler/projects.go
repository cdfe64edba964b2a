// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/internal/util"
)

// ProjectListData holds data for the dashboard project list template.
type ProjectListData struct {
	Projects   []model.Project
	Categories []model.Category
	Filter     store.ListFilter
	View       string
	Pagination Pagination
}

const (
	viewGrid = "grid"
	viewList = "list"
)

// projectListView reads the ?view= layout toggle. Grid is the default
// and shows fewer items per page than the denser list layout.
func projectListView(r *http.Request) (string, int) {
	if r.URL.Query().Get("view") == viewList {
		return viewList, store.PageSizeList
	}
	return viewGrid, store.PageSizeGrid
}

// ListProjects handles GET /dashboard/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	view, perPage := projectListView(r)
	f := listFilterFromRequest(r, perPage)

	total, err := h.queries.CountProjects(r.Context(), f)
	if err != nil {
		slog.Error("counting projects", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	projects, err := h.queries.ListProjects(r.Context(), f)
	if err != nil {
		slog.Error("listing projects", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/projects_list", render.TemplateData{
		Title: "Projects",
		Data: ProjectListData{
			Projects:   projects,
			Categories: categories,
			Filter:     f,
			View:       view,
			Pagination: pagination,
		},
	})
}

// ProjectFormData holds data for the project form template.
type ProjectFormData struct {
	Project    *model.Project
	Tags       string
	Categories []model.Category
	Errors     map[string]string
	IsEdit     bool
}

// NewProjectForm handles GET /dashboard/projects/new.
func (h *Handler) NewProjectForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/projects_form", render.TemplateData{
		Title: "New Project",
		Data: ProjectFormData{
			Categories: categories,
			Errors:     make(map[string]string),
		},
	})
}

// projectParamsFromForm reads the project form fields.
func projectParamsFromForm(r *http.Request) (store.CreateProjectParams, []string, map[string]string) {
	title := strings.TrimSpace(r.FormValue("title"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(title)
	}

	status := r.FormValue("status")
	if status == "" {
		status = model.StatusDraft
	}

	position, _ := strconv.ParseInt(r.FormValue("order"), 10, 64)

	params := store.CreateProjectParams{
		Title:          title,
		Slug:           slug,
		Summary:        strings.TrimSpace(r.FormValue("summary")),
		Description:    r.FormValue("description"),
		HeroImage:      strings.TrimSpace(r.FormValue("hero_image")),
		RepositoryURL:  strings.TrimSpace(r.FormValue("repository_url")),
		LiveURL:        strings.TrimSpace(r.FormValue("live_url")),
		CategoryID:     util.ParseNullInt64Positive(r.FormValue("category_id")),
		Position:       position,
		Featured:       r.FormValue("featured") == "on",
		Status:         status,
		SEOTitle:       strings.TrimSpace(r.FormValue("seo_title")),
		SEODescription: strings.TrimSpace(r.FormValue("seo_description")),
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

// CreateProject handles POST /dashboard/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/projects/new", http.StatusSeeOther)
		return
	}

	params, tags, errs := projectParamsFromForm(r)
	if len(errs) > 0 {
		h.renderProjectFormErrors(w, r, nil, errs)
		return
	}

	if user := middleware.GetUser(r); user != nil {
		params.AuthorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	project, err := h.queries.CreateProject(r.Context(), params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderProjectFormErrors(w, r, nil, map[string]string{"slug": "Slug is already in use"})
			return
		}
		slog.Error("creating project", "error", err)
		h.renderer.SetFlash(r, "Error creating project", "error")
		http.Redirect(w, r, "/dashboard/projects/new", http.StatusSeeOther)
		return
	}

	if project.IsPublished() {
		if project, err = h.queries.PublishProject(r.Context(), project.ID); err != nil {
			slog.Error("stamping project publish time", "project_id", project.ID, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindProject, project.ID, tags); err != nil {
		slog.Error("setting project tags", "project_id", project.ID, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindProject, project.ID, model.AuditActionCreate, project)
	h.renderer.SetFlash(r, "Project created", "success")
	http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
}

// EditProjectForm handles GET /dashboard/projects/{id}.
func (h *Handler) EditProjectForm(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid project ID", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	project, err := h.queries.GetProjectByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "Project not found", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	tags, err := h.queries.GetTags(r.Context(), model.KindProject, id)
	if err != nil {
		slog.Error("loading project tags", "project_id", id, "error", err)
	}
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/projects_form", render.TemplateData{
		Title: "Edit Project",
		Data: ProjectFormData{
			Project:    &project,
			Tags:       strings.Join(tags, ", "),
			Categories: categories,
			Errors:     make(map[string]string),
			IsEdit:     true,
		},
	})
}

// UpdateProject handles POST /dashboard/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid project ID", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	existing, err := h.queries.GetProjectByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "Project not found", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	params, tags, errs := projectParamsFromForm(r)
	if len(errs) > 0 {
		h.renderProjectFormErrors(w, r, &existing, errs)
		return
	}

	wasDraft := existing.IsDraft()

	project, err := h.queries.UpdateProject(r.Context(), store.UpdateProjectParams{
		ID:             id,
		Title:          params.Title,
		Slug:           params.Slug,
		Summary:        params.Summary,
		Description:    params.Description,
		HeroImage:      params.HeroImage,
		RepositoryURL:  params.RepositoryURL,
		LiveURL:        params.LiveURL,
		CategoryID:     params.CategoryID,
		Position:       params.Position,
		Featured:       params.Featured,
		Status:         params.Status,
		SEOTitle:       params.SEOTitle,
		SEODescription: params.SEODescription,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderProjectFormErrors(w, r, &existing, map[string]string{"slug": "Slug is already in use"})
			return
		}
		slog.Error("updating project", "project_id", id, "error", err)
		h.renderer.SetFlash(r, "Error updating project", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	// The form is a plain status setter; route the first transition
	// to published through the lifecycle so published_at gets stamped.
	if wasDraft && project.IsPublished() {
		if project, err = h.queries.PublishProject(r.Context(), id); err != nil {
			slog.Error("publishing project", "project_id", id, "error", err)
		}
	}

	if err := h.queries.SetTags(r.Context(), model.KindProject, id, tags); err != nil {
		slog.Error("setting project tags", "project_id", id, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindProject, id, model.AuditActionUpdate, project)
	h.renderer.SetFlash(r, "Project updated", "success")
	http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
}

// DeleteProject handles POST /dashboard/projects/{id}/delete.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid project ID", "error")
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.renderer.SetFlash(r, "Project not found", "error")
		} else {
			slog.Error("deleting project", "project_id", id, "error", err)
			h.renderer.SetFlash(r, "Error deleting project", "error")
		}
		http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindProject, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "Project deleted", "success")
	http.Redirect(w, r, "/dashboard/projects", http.StatusSeeOther)
}

func (h *Handler) renderProjectFormErrors(w http.ResponseWriter, r *http.Request, project *model.Project, errs map[string]string) {
	categories, _ := h.queries.ListCategories(r.Context())

	title := "New Project"
	if project != nil {
		title = "Edit Project"
	}
	h.render(w, r, "dashboard/projects_form", render.TemplateData{
		Title: title,
		Data: ProjectFormData{
			Project:    project,
			Tags:       r.FormValue("tags"),
			Categories: categories,
			Errors:     errs,
			IsEdit:     project != nil,
		},
	})
}
