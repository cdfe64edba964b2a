// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

var userColumns = []string{
	"id", "email", "password_hash", "name", "is_staff",
	"created_at", "updated_at", "last_login_at",
}

func scanUser(row sq.RowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsStaff,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	return u, err
}

// CreateUserParams holds the fields for creating a user account.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	IsStaff      bool
}

// CreateUser inserts a new user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("users").
		Columns("email", "password_hash", "name", "is_staff", "created_at", "updated_at").
		Values(arg.Email, arg.PasswordHash, arg.Name, arg.IsStaff, now, now).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("building insert: %w", err)
	}
	return scanUser(q.db.QueryRowContext(ctx, query, args...))
}

// GetUserByID returns a user by its id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	query := "SELECT " + strings.Join(userColumns, ", ") + " FROM users WHERE id = ?"
	u, err := scanUser(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.User{}, mapNoRows(err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	query := "SELECT " + strings.Join(userColumns, ", ") + " FROM users WHERE email = ?"
	u, err := scanUser(q.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return model.User{}, mapNoRows(err)
	}
	return u, nil
}

// TouchLastLogin records a successful sign-in.
func (q *Queries) TouchLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?", now, now, id)
	return err
}

// UpdateUserPassword replaces a user's password hash. Used for
// transparent rehashing after a parameter change.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?", passwordHash, time.Now(), id)
	return err
}

// CountUsers returns the total number of user accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
