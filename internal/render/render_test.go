// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{block "content" .}}{{end}}</body></html>{{end}}`),
		},
		"layouts/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<nav></nav>{{block "main" .}}{{end}}{{end}}`),
		},
		"public/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{end}}`),
		},
		"dashboard/overview.html": &fstest.MapFile{
			Data: []byte(`{{define "main"}}<p>{{.Title}}</p>{{end}}`),
		},
	}
}

func TestRendererParsesGroups(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	if err := r.Render(w, req, "public/home", TemplateData{Title: "Welcome"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(w.Body.String(), "<h1>Welcome</h1>") {
		t.Errorf("body = %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRenderDashboardLayout(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	if err := r.Render(w, req, "dashboard/overview", TemplateData{Title: "Stats"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<nav></nav>") || !strings.Contains(body, "<p>Stats</p>") {
		t.Errorf("body = %q", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	if err := r.Render(w, req, "public/missing", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains string
		excludes string
	}{
		{"basic formatting", "**bold** text", "<strong>bold</strong>", ""},
		{"heading", "# Title", "Title", ""},
		{"script stripped", `hello <script>alert(1)</script>`, "hello", "<script>"},
		{"link kept", "[site](https://example.com)", `href="https://example.com"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Markdown(tt.source))
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Markdown(%q) = %q, want to contain %q", tt.source, got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("Markdown(%q) = %q, should not contain %q", tt.source, got, tt.excludes)
			}
		})
	}
}
