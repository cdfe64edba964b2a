// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

var auditColumns = []string{
	"id", "entity_kind", "entity_id", "action", "snapshot", "actor_id", "created_at",
}

func scanAuditEntry(row sq.RowScanner) (model.AuditEntry, error) {
	var a model.AuditEntry
	err := row.Scan(
		&a.ID, &a.EntityKind, &a.EntityID, &a.Action, &a.Snapshot, &a.ActorID, &a.CreatedAt,
	)
	return a, err
}

// AppendAuditParams holds one audit record. The snapshot is a JSON
// document of the entity's fields after the change.
type AppendAuditParams struct {
	EntityKind string
	EntityID   int64
	Action     string
	Snapshot   string
	ActorID    sql.NullInt64
}

// AppendAudit writes an append-only audit record. Records are never
// updated or deleted.
func (q *Queries) AppendAudit(ctx context.Context, arg AppendAuditParams) (model.AuditEntry, error) {
	snapshot := arg.Snapshot
	if snapshot == "" {
		snapshot = "{}"
	}
	query, args, err := q.sb.Insert("audit_log").
		Columns("entity_kind", "entity_id", "action", "snapshot", "actor_id", "created_at").
		Values(arg.EntityKind, arg.EntityID, arg.Action, snapshot, arg.ActorID, time.Now()).
		Suffix("RETURNING " + strings.Join(auditColumns, ", ")).
		ToSql()
	if err != nil {
		return model.AuditEntry{}, fmt.Errorf("building insert: %w", err)
	}
	return scanAuditEntry(q.db.QueryRowContext(ctx, query, args...))
}

// ListAuditForEntity returns the change history of one entity, newest first.
func (q *Queries) ListAuditForEntity(ctx context.Context, kind string, entityID int64, limit int64) ([]model.AuditEntry, error) {
	query := "SELECT " + strings.Join(auditColumns, ", ") +
		" FROM audit_log WHERE entity_kind = ? AND entity_id = ? ORDER BY created_at DESC, id DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, kind, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		a, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// RecentAudit returns the latest audit records across all entities,
// shown as the dashboard activity feed.
func (q *Queries) RecentAudit(ctx context.Context, limit int64) ([]model.AuditEntry, error) {
	query := "SELECT " + strings.Join(auditColumns, ", ") +
		" FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?"
	rows, err := q.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		a, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
