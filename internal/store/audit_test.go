// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

func TestAuditAppendAndList(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	p := createTestProject(t, q, "Tracked", "tracked", model.StatusDraft)

	actions := []string{model.AuditActionCreate, model.AuditActionUpdate, model.AuditActionDelete}
	for _, action := range actions {
		if _, err := q.AppendAudit(ctx, AppendAuditParams{
			EntityKind: model.KindProject,
			EntityID:   p.ID,
			Action:     action,
			Snapshot:   `{"title":"Tracked"}`,
		}); err != nil {
			t.Fatalf("AppendAudit(%s): %v", action, err)
		}
	}

	entries, err := q.ListAuditForEntity(ctx, model.KindProject, p.ID, 10)
	if err != nil {
		t.Fatalf("ListAuditForEntity: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Action != model.AuditActionDelete {
		t.Errorf("first entry action = %q, want delete", entries[0].Action)
	}
	if entries[2].Action != model.AuditActionCreate {
		t.Errorf("last entry action = %q, want create", entries[2].Action)
	}

	// Another entity's history stays separate.
	other, err := q.ListAuditForEntity(ctx, model.KindPost, p.ID, 10)
	if err != nil {
		t.Fatalf("ListAuditForEntity: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d entries for other kind, want 0", len(other))
	}
}

func TestAppendAuditDefaultsSnapshot(t *testing.T) {
	q := testQueries(t)

	entry, err := q.AppendAudit(context.Background(), AppendAuditParams{
		EntityKind: model.KindSkill,
		EntityID:   1,
		Action:     model.AuditActionCreate,
	})
	if err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}
	if entry.Snapshot != "{}" {
		t.Errorf("Snapshot = %q, want {}", entry.Snapshot)
	}
}
