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

// PostListData holds data for the dashboard blog list template.
type PostListData struct {
	Posts      []model.Post
	Categories []model.Category
	Filter     store.ListFilter
	Pagination Pagination
}

// ListPosts handles GET /dashboard/blog.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	f := listFilterFromRequest(r, store.PageSizeList)

	total, err := h.queries.CountPosts(r.Context(), f)
	if err != nil {
		slog.Error("counting posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	posts, err := h.queries.ListPosts(r.Context(), f)
	if err != nil {
		slog.Error("listing posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/blog_list", render.TemplateData{
		Title: "Blog Posts",
		Data: PostListData{
			Posts:      posts,
			Categories: categories,
			Filter:     f,
			Pagination: pagination,
		},
	})
}

// PostFormData holds data for the blog post form template.
type PostFormData struct {
	Post       *model.Post
	Tags       string
	Categories []model.Category
	Errors     map[string]string
	IsEdit     bool
}

// NewPostForm handles GET /dashboard/blog/new.
func (h *Handler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/blog_form", render.TemplateData{
		Title: "New Post",
		Data: PostFormData{
			Categories: categories,
			Errors:     make(map[string]string),
		},
	})
}

func postParamsFromForm(r *http.Request) (store.CreatePostParams, []string, map[string]string) {
	title := strings.TrimSpace(r.FormValue("title"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	if slug == "" {
		slug = util.Slugify(title)
	}

	status := r.FormValue("status")
	if status == "" {
		status = model.StatusDraft
	}

	params := store.CreatePostParams{
		Title:          title,
		Slug:           slug,
		Excerpt:        strings.TrimSpace(r.FormValue("excerpt")),
		Content:        r.FormValue("content"),
		CoverImage:     strings.TrimSpace(r.FormValue("cover_image")),
		CategoryID:     util.ParseNullInt64Positive(r.FormValue("category_id")),
		Status:         status,
		SEOTitle:       strings.TrimSpace(r.FormValue("seo_title")),
		SEODescription: strings.TrimSpace(r.FormValue("seo_description")),
	}

	errs := make(map[string]string)
	if title == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(params.Content) == "" {
		errs["content"] = "Content is required"
	}
	if slug != "" && !util.IsValidSlug(slug) {
		errs["slug"] = "Slug may contain only lowercase letters, numbers, and hyphens"
	}
	if !model.IsValidStatus(status) {
		errs["status"] = "Unknown status"
	}

	return params, parseTagInput(r.FormValue("tags")), errs
}

// CreatePost handles POST /dashboard/blog.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/blog/new", http.StatusSeeOther)
		return
	}

	params, tags, errs := postParamsFromForm(r)
	if len(errs) > 0 {
		h.renderPostFormErrors(w, r, nil, errs)
		return
	}

	if user := middleware.GetUser(r); user != nil {
		params.AuthorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	post, err := h.queries.CreatePost(r.Context(), params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderPostFormErrors(w, r, nil, map[string]string{"slug": "Slug is already in use"})
			return
		}
		slog.Error("creating post", "error", err)
		h.renderer.SetFlash(r, "Error creating post", "error")
		http.Redirect(w, r, "/dashboard/blog/new", http.StatusSeeOther)
		return
	}

	if post.IsPublished() {
		if post, err = h.queries.PublishPost(r.Context(), post.ID); err != nil {
			slog.Error("stamping post publish time", "post_id", post.ID, "error", err)
		}
	}
	if err := h.queries.SetTags(r.Context(), model.KindPost, post.ID, tags); err != nil {
		slog.Error("setting post tags", "post_id", post.ID, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindPost, post.ID, model.AuditActionCreate, post)
	h.renderer.SetFlash(r, "Post created", "success")
	http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
}

// EditPostForm handles GET /dashboard/blog/{id}.
func (h *Handler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid post ID", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "Post not found", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	tags, err := h.queries.GetTags(r.Context(), model.KindPost, id)
	if err != nil {
		slog.Error("loading post tags", "post_id", id, "error", err)
	}
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "dashboard/blog_form", render.TemplateData{
		Title: "Edit Post",
		Data: PostFormData{
			Post:       &post,
			Tags:       strings.Join(tags, ", "),
			Categories: categories,
			Errors:     make(map[string]string),
			IsEdit:     true,
		},
	})
}

// UpdatePost handles POST /dashboard/blog/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid post ID", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	existing, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "Post not found", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	params, tags, errs := postParamsFromForm(r)
	if len(errs) > 0 {
		h.renderPostFormErrors(w, r, &existing, errs)
		return
	}

	wasDraft := !existing.IsPublished()

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:             id,
		Title:          params.Title,
		Slug:           params.Slug,
		Excerpt:        params.Excerpt,
		Content:        params.Content,
		CoverImage:     params.CoverImage,
		CategoryID:     params.CategoryID,
		Status:         params.Status,
		SEOTitle:       params.SEOTitle,
		SEODescription: params.SEODescription,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderPostFormErrors(w, r, &existing, map[string]string{"slug": "Slug is already in use"})
			return
		}
		slog.Error("updating post", "post_id", id, "error", err)
		h.renderer.SetFlash(r, "Error updating post", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	if wasDraft && post.IsPublished() {
		if post, err = h.queries.PublishPost(r.Context(), id); err != nil {
			slog.Error("publishing post", "post_id", id, "error", err)
		}
	}

	if err := h.queries.SetTags(r.Context(), model.KindPost, id, tags); err != nil {
		slog.Error("setting post tags", "post_id", id, "error", err)
	}

	h.recordAudit(r.Context(), r, model.KindPost, id, model.AuditActionUpdate, post)
	h.renderer.SetFlash(r, "Post updated", "success")
	http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
}

// DeletePost handles POST /dashboard/blog/{id}/delete.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid post ID", "error")
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.renderer.SetFlash(r, "Post not found", "error")
		} else {
			slog.Error("deleting post", "post_id", id, "error", err)
			h.renderer.SetFlash(r, "Error deleting post", "error")
		}
		http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindPost, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "Post deleted", "success")
	http.Redirect(w, r, "/dashboard/blog", http.StatusSeeOther)
}

func (h *Handler) renderPostFormErrors(w http.ResponseWriter, r *http.Request, post *model.Post, errs map[string]string) {
	categories, _ := h.queries.ListCategories(r.Context())

	title := "New Post"
	if post != nil {
		title = "Edit Post"
	}
	h.render(w, r, "dashboard/blog_form", render.TemplateData{
		Title: title,
		Data: PostFormData{
			Post:       post,
			Tags:       r.FormValue("tags"),
			Categories: categories,
			Errors:     errs,
			IsEdit:     post != nil,
		},
	})
}
