// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Maimoon-github/Professional-Portfolio/internal/auth"
)

// Default staff credentials created on first run.
const (
	DefaultStaffEmail    = "admin@example.com"
	DefaultStaffPassword = "changeme"
	DefaultStaffName     = "Site Owner"
)

// Seed creates the initial staff account and site settings row on an
// empty database. It is safe to call on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if _, err := queries.EnsureSiteSetting(ctx); err != nil {
		return fmt.Errorf("ensuring site settings: %w", err)
	}

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(DefaultStaffPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultStaffEmail,
		PasswordHash: passwordHash,
		Name:         DefaultStaffName,
		IsStaff:      true,
	})
	if err != nil {
		return fmt.Errorf("creating staff user: %w", err)
	}

	slog.Info("created default staff user, change the password after first login",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultStaffPassword,
	)
	return nil
}
