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

var messageColumns = []string{
	"id", "name", "email", "subject", "message", "is_read", "created_at", "updated_at",
}

func scanContactMessage(row sq.RowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateContactMessageParams holds a contact form submission.
type CreateContactMessageParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// CreateContactMessage records a contact form submission, unread.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	now := time.Now()
	query, args, err := q.sb.Insert("contact_messages").
		Columns("name", "email", "subject", "message", "is_read", "created_at", "updated_at").
		Values(arg.Name, arg.Email, arg.Subject, arg.Message, false, now, now).
		Suffix("RETURNING " + strings.Join(messageColumns, ", ")).
		ToSql()
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("building insert: %w", err)
	}
	return scanContactMessage(q.db.QueryRowContext(ctx, query, args...))
}

// GetContactMessageByID returns a contact message by its id.
func (q *Queries) GetContactMessageByID(ctx context.Context, id int64) (model.ContactMessage, error) {
	query := "SELECT " + strings.Join(messageColumns, ", ") + " FROM contact_messages WHERE id = ?"
	m, err := scanContactMessage(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return model.ContactMessage{}, mapNoRows(err)
	}
	return m, nil
}

// ListContactMessages returns the filtered, paginated message inbox.
func (q *Queries) ListContactMessages(ctx context.Context, f MessageFilter) ([]model.ContactMessage, error) {
	query, args, err := MessageListQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list: %w", err)
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CountContactMessages returns the number of messages matching the filter.
func (q *Queries) CountContactMessages(ctx context.Context, f MessageFilter) (int64, error) {
	query, args, err := MessageCountQuery(f).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count: %w", err)
	}
	var count int64
	err = q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// RecentContactMessages returns the most recently received messages.
func (q *Queries) RecentContactMessages(ctx context.Context, limit int64) ([]model.ContactMessage, error) {
	query := "SELECT " + strings.Join(messageColumns, ", ") +
		" FROM contact_messages ORDER BY created_at DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CountUnreadMessages returns the number of unread messages, shown as
// the dashboard inbox badge.
func (q *Queries) CountUnreadMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contact_messages WHERE is_read = 0").Scan(&count)
	return count, err
}

// SetMessageRead marks a message read or unread and returns the new state.
func (q *Queries) SetMessageRead(ctx context.Context, id int64, read bool) (model.ContactMessage, error) {
	query := "UPDATE contact_messages SET is_read = ?, updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(messageColumns, ", ")
	m, err := scanContactMessage(q.db.QueryRowContext(ctx, query, read, time.Now(), id))
	if err != nil {
		return model.ContactMessage{}, mapNoRows(err)
	}
	return m, nil
}

// ToggleMessageRead flips the read flag and returns the new state.
func (q *Queries) ToggleMessageRead(ctx context.Context, id int64) (model.ContactMessage, error) {
	query := "UPDATE contact_messages SET is_read = NOT is_read, updated_at = ?" +
		" WHERE id = ? RETURNING " + strings.Join(messageColumns, ", ")
	m, err := scanContactMessage(q.db.QueryRowContext(ctx, query, time.Now(), id))
	if err != nil {
		return model.ContactMessage{}, mapNoRows(err)
	}
	return m, nil
}

// DeleteContactMessages removes all matched messages in one statement.
func (q *Queries) DeleteContactMessages(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := q.sb.Delete("contact_messages").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	_, err = q.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteContactMessage removes a single message.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
