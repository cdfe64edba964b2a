// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded templates and renders pages with
// shared layout data: flash messages, the signed-in user, and site
// settings.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

// htmlSanitizer strips unsafe HTML from rendered markdown. UGCPolicy
// allows the usual formatting tags while blocking scripts.
var htmlSanitizer = bluemonday.UGCPolicy()

// Markdown converts markdown to sanitized HTML. Used for project
// descriptions, post content, and news bodies.
func Markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a Renderer with all templates parsed.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
	}
	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

// templateGroups maps a template directory to the layouts composed
// under it. Dashboard pages nest inside the dashboard chrome; public
// and auth pages use the base layout alone.
var templateGroups = map[string][]string{
	"dashboard": {"layouts/base.html", "layouts/dashboard.html"},
	"public":    {"layouts/base.html"},
	"auth":      {"layouts/base.html"},
}

func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for group, layouts := range templateGroups {
		pages, err := templateFiles(templatesFS, group)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", group, err)
		}
		for _, page := range pages {
			name := group + "/" + strings.TrimSuffix(filepath.Base(page), ".html")

			files := append([]string{}, layouts...)
			files = append(files, partials...)
			files = append(files, page)

			tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}
			r.templates[name] = tmpl
		}
	}
	return nil
}

// templateFiles returns all .html files in a directory. A missing
// directory yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return files, nil
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"statusLabel": model.StatusDisplay,
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Data        any
	User        *model.User
	Site        model.SiteSetting
	Flash       string
	FlashType   string
	CurrentYear int
}

// Render executes a named template against the base layout, buffering
// output so errors surface before any bytes reach the client.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()

	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), "flash"); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), "flash_type")
			if data.FlashType == "" {
				data.FlashType = "info"
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
	return nil
}

// SetFlash queues a flash message for the next rendered page.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), "flash", message)
		r.sessionManager.Put(req.Context(), "flash_type", flashType)
	}
}
