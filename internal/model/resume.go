// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Experience represents a professional position.
type Experience struct {
	ID          int64        `json:"id"`
	Role        string       `json:"role"`
	Company     string       `json:"company"`
	Location    string       `json:"location,omitempty"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     sql.NullTime `json:"end_date,omitempty"`
	IsCurrent   bool         `json:"is_current"`
	Description string       `json:"description,omitempty"`
	Position    int64        `json:"order"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Education represents a degree or study program.
type Education struct {
	ID           int64         `json:"id"`
	Institution  string        `json:"institution"`
	Degree       string        `json:"degree"`
	FieldOfStudy string        `json:"field_of_study,omitempty"`
	StartYear    int64         `json:"start_year"`
	EndYear      sql.NullInt64 `json:"end_year,omitempty"`
	Description  string        `json:"description,omitempty"`
	Position     int64         `json:"order"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Skill represents a named skill with a 0-100 proficiency.
// The (name, category) pair is unique.
type Skill struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Proficiency int64     `json:"proficiency"`
	Category    string    `json:"category,omitempty"`
	Position    int64     `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
