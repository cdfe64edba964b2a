// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SocialLink is an ordered link to an external profile.
// The (platform, url) pair is unique.
type SocialLink struct {
	ID        int64     `json:"id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	Icon      string    `json:"icon,omitempty"`
	Position  int64     `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SiteSetting is the singleton record holding site-wide metadata.
// Creation is blocked once a row exists.
type SiteSetting struct {
	ID                int64  `json:"id"`
	SiteName          string `json:"site_name"`
	Tagline           string `json:"tagline,omitempty"`
	Logo              string `json:"logo,omitempty"`
	Favicon           string `json:"favicon,omitempty"`
	MetaDescription   string `json:"meta_description,omitempty"`
	GoogleAnalyticsID string `json:"google_analytics_id,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
