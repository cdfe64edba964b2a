// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the templates and static assets served by the
// application binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var Templates embed.FS

//go:embed all:static
var Static embed.FS

// TemplatesFS returns the template tree rooted at the group
// directories (layouts, partials, dashboard, public, auth).
func TemplatesFS() (fs.FS, error) {
	return fs.Sub(Templates, "templates")
}

// StaticFS returns the static asset tree rooted at css/ and js/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(Static, "static")
}
