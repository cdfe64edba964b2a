// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/metrics"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"

	"github.com/go-chi/chi/v5"
)

// homeFeaturedLimit is how many featured projects the home page shows.
const homeFeaturedLimit = 6

// homeNewsLimit is how many news items the home page shows.
const homeNewsLimit = 3

// publicStatus returns the status filter for a public list view:
// published unless a staff session asked for everything.
func publicStatus(r *http.Request) string {
	if middleware.PreviewRequested(r) {
		return store.FilterAll
	}
	return model.StatusPublished
}

// NotFound renders the public 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, r, "public/404", render.TemplateData{Title: "Not Found"})
}

// HomeData holds data for the public home page.
type HomeData struct {
	FeaturedProjects []model.Project
	LatestNews       []model.NewsItem
	SocialLinks      []model.SocialLink
}

// Home handles GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	featured, err := h.queries.FeaturedProjects(r.Context(), homeFeaturedLimit)
	if err != nil {
		slog.Error("listing featured projects", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	news, err := h.queries.LatestPublishedNews(r.Context(), homeNewsLimit)
	if err != nil {
		slog.Error("listing latest news", "error", err)
	}
	links, err := h.site.SocialLinks(r.Context())
	if err != nil {
		slog.Error("loading social links", "error", err)
	}

	h.render(w, r, "public/home", render.TemplateData{
		Title: "Home",
		Data: HomeData{
			FeaturedProjects: featured,
			LatestNews:       news,
			SocialLinks:      links,
		},
	})
}

// PublicProjectList holds data for the public project list page.
type PublicProjectList struct {
	Projects   []model.Project
	Categories []model.Category
	Filter     store.ListFilter
	Pagination Pagination
}

// PublicProjects handles GET /projects/.
func (h *Handler) PublicProjects(w http.ResponseWriter, r *http.Request) {
	f := listFilterFromRequest(r, store.PageSizeGrid)
	f.Status = publicStatus(r)

	total, err := h.queries.CountProjects(r.Context(), f)
	if err != nil {
		slog.Error("counting public projects", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	projects, err := h.queries.ListProjects(r.Context(), f)
	if err != nil {
		slog.Error("listing public projects", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "public/projects", render.TemplateData{
		Title: "Projects",
		Data: PublicProjectList{
			Projects:   projects,
			Categories: categories,
			Filter:     f,
			Pagination: pagination,
		},
	})
}

// ProjectDetail holds data for the public project detail page.
type ProjectDetail struct {
	Project model.Project
	Images  []model.ProjectImage
	Tags    []string
}

// PublicProjectDetail handles GET /projects/{slug}. Draft projects
// 404 exactly like missing slugs unless a staff preview is requested.
func (h *Handler) PublicProjectDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.queries.GetProjectBySlug(r.Context(), slug, !middleware.PreviewRequested(r))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	images, err := h.queries.ListProjectImages(r.Context(), project.ID)
	if err != nil {
		slog.Error("listing project images", "project_id", project.ID, "error", err)
	}
	tags, err := h.queries.GetTags(r.Context(), model.KindProject, project.ID)
	if err != nil {
		slog.Error("loading project tags", "project_id", project.ID, "error", err)
	}

	h.render(w, r, "public/project_detail", render.TemplateData{
		Title: project.Title,
		Data: ProjectDetail{
			Project: project,
			Images:  images,
			Tags:    tags,
		},
	})
}

// PublicPostList holds data for the public blog list page.
type PublicPostList struct {
	Posts      []model.Post
	Categories []model.Category
	Filter     store.ListFilter
	Pagination Pagination
}

// PublicBlog handles GET /blog/.
func (h *Handler) PublicBlog(w http.ResponseWriter, r *http.Request) {
	f := listFilterFromRequest(r, store.PageSizeList)
	f.Status = publicStatus(r)

	total, err := h.queries.CountPosts(r.Context(), f)
	if err != nil {
		slog.Error("counting public posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	posts, err := h.queries.ListPosts(r.Context(), f)
	if err != nil {
		slog.Error("listing public posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories", "error", err)
	}

	h.render(w, r, "public/blog", render.TemplateData{
		Title: "Blog",
		Data: PublicPostList{
			Posts:      posts,
			Categories: categories,
			Filter:     f,
			Pagination: pagination,
		},
	})
}

// PostDetail holds data for the public blog post page.
type PostDetail struct {
	Post model.Post
	Tags []string
}

// PublicPostDetail handles GET /blog/{slug}.
func (h *Handler) PublicPostDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPostBySlug(r.Context(), slug, !middleware.PreviewRequested(r))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	tags, err := h.queries.GetTags(r.Context(), model.KindPost, post.ID)
	if err != nil {
		slog.Error("loading post tags", "post_id", post.ID, "error", err)
	}

	h.render(w, r, "public/blog_detail", render.TemplateData{
		Title: post.Title,
		Data: PostDetail{
			Post: post,
			Tags: tags,
		},
	})
}

// PublicNewsList holds data for the public news list page.
type PublicNewsList struct {
	Items      []model.NewsItem
	Filter     store.ListFilter
	Pagination Pagination
}

// PublicNews handles GET /news/.
func (h *Handler) PublicNews(w http.ResponseWriter, r *http.Request) {
	f := listFilterFromRequest(r, store.PageSizeList)
	f.Status = publicStatus(r)

	total, err := h.queries.CountNewsItems(r.Context(), f)
	if err != nil {
		slog.Error("counting public news", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	items, err := h.queries.ListNewsItems(r.Context(), f)
	if err != nil {
		slog.Error("listing public news", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "public/news", render.TemplateData{
		Title: "News",
		Data: PublicNewsList{
			Items:      items,
			Filter:     f,
			Pagination: pagination,
		},
	})
}

// PublicNewsDetail handles GET /news/{slug}.
func (h *Handler) PublicNewsDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := h.queries.GetNewsItemBySlug(r.Context(), slug, !middleware.PreviewRequested(r))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	h.render(w, r, "public/news_detail", render.TemplateData{
		Title: item.Title,
		Data:  item,
	})
}

// PublicResume handles GET /experience/.
func (h *Handler) PublicResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	experiences, err := h.queries.ListExperiences(ctx)
	if err != nil {
		slog.Error("listing experiences", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	education, err := h.queries.ListEducation(ctx)
	if err != nil {
		slog.Error("listing education", "error", err)
	}
	skills, err := h.queries.ListSkills(ctx)
	if err != nil {
		slog.Error("listing skills", "error", err)
	}

	h.render(w, r, "public/resume", render.TemplateData{
		Title: "Experience",
		Data: ResumeData{
			Experiences: experiences,
			Education:   education,
			Skills:      skills,
		},
	})
}

// ContactForm handles GET /contact/.
func (h *Handler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "public/contact", render.TemplateData{Title: "Contact"})
}

// SubmitContact handles POST /contact/.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/contact/", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	message := strings.TrimSpace(r.FormValue("message"))

	if name == "" || email == "" || message == "" {
		h.renderer.SetFlash(r, "Name, email, and message are required", "error")
		http.Redirect(w, r, "/contact/", http.StatusSeeOther)
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		h.renderer.SetFlash(r, "Invalid email address", "error")
		http.Redirect(w, r, "/contact/", http.StatusSeeOther)
		return
	}

	if _, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}); err != nil {
		slog.Error("saving contact message", "error", err)
		h.renderer.SetFlash(r, "Something went wrong, please try again", "error")
		http.Redirect(w, r, "/contact/", http.StatusSeeOther)
		return
	}

	metrics.ContactMessagesReceived.Inc()
	h.renderer.SetFlash(r, "Thanks for reaching out. I will get back to you soon.", "success")
	http.Redirect(w, r, "/contact/", http.StatusSeeOther)
}
