// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLen caps generated slugs; the slug columns hold 220 chars and
// titles can run long.
const maxSlugLen = 220

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)

	// stripAccents decomposes accented letters and drops the combining
	// marks, so "café" becomes "cafe" before transliteration.
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts a string to a URL-friendly slug. Accents are
// stripped, remaining non-ASCII runes (CJK, Cyrillic, ...) are
// transliterated, and everything except lowercase alphanumerics and
// single hyphens is collapsed away.
func Slugify(s string) string {
	out, _, _ := transform.String(stripAccents, s)
	out = unidecode.Unidecode(out)
	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, " ", "-")
	out = nonSlugChars.ReplaceAllString(out, "")
	out = repeatedHyphens.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")

	if len(out) > maxSlugLen {
		out = strings.Trim(out[:maxSlugLen], "-")
	}
	return out
}

// IsValidSlug reports whether s is a well-formed slug: non-empty,
// lowercase alphanumerics and hyphens only, no leading, trailing, or
// doubled hyphens.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
