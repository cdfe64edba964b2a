// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Audit actions recorded in the audit log.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// Entity kinds referenced by audit log rows and bulk actions.
const (
	KindProject    = "project"
	KindPost       = "blog"
	KindNews       = "news"
	KindExperience = "experience"
	KindEducation  = "education"
	KindSkill      = "skill"
	KindMedia      = "media"
	KindSocialLink = "social_link"
	KindCategory   = "category"
	KindSetting    = "setting"
	KindMessage    = "message"
)

// AuditEntry is one append-only record of an entity mutation:
// the entity reference, the action, a JSON snapshot of the fields
// after the change, and the acting user.
type AuditEntry struct {
	ID         int64         `json:"id"`
	EntityKind string        `json:"entity_kind"`
	EntityID   int64         `json:"entity_id"`
	Action     string        `json:"action"`
	Snapshot   string        `json:"snapshot"`
	ActorID    sql.NullInt64 `json:"actor_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
