// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Media asset file types.
const (
	MediaTypeImage    = "image"
	MediaTypeDocument = "document"
)

// ValidMediaTypes contains all valid media asset file types.
var ValidMediaTypes = []string{MediaTypeImage, MediaTypeDocument}

// IsValidMediaType checks if the given file type is known.
func IsValidMediaType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeDocument
}

// MediaAsset represents an uploaded file stored by reference path.
type MediaAsset struct {
	ID          int64     `json:"id"`
	FilePath    string    `json:"file_path"`
	FileType    string    `json:"file_type"`
	Title       string    `json:"title,omitempty"`
	AltText     string    `json:"alt_text,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
