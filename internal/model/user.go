package model

import (
	"database/sql"
	"time"
)

// User represents an account that can sign in to the dashboard.
// Only staff users may mutate content.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	IsStaff      bool         `json:"is_staff"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}
