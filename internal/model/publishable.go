// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the portfolio content entities and their
// lifecycle constants.
package model

// Content statuses shared by all publishable entities.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses contains all valid publishable statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished}

// IsValidStatus checks if a status is one of the known statuses.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// StatusDisplay returns the human-readable form of a status.
func StatusDisplay(status string) string {
	switch status {
	case StatusPublished:
		return "Published"
	default:
		return "Draft"
	}
}
