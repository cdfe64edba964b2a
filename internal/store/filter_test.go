// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"testing"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalItems int64
		perPage    int
		wantPage   int
		wantTotal  int
	}{
		{"first page", 1, 50, 12, 1, 5},
		{"middle page", 3, 50, 12, 3, 5},
		{"last page exact", 5, 50, 12, 5, 5},
		{"beyond last clamps down", 99, 50, 12, 5, 5},
		{"zero clamps to first", 0, 50, 12, 1, 5},
		{"negative clamps to first", -3, 50, 12, 1, 5},
		{"empty set has one page", 1, 0, 12, 1, 1},
		{"beyond last on empty set", 7, 0, 12, 1, 1},
		{"single partial page", 1, 5, 20, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, total := ClampPage(tt.page, tt.totalItems, tt.perPage)
			if page != tt.wantPage || total != tt.wantTotal {
				t.Errorf("ClampPage(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.totalItems, tt.perPage, page, total, tt.wantPage, tt.wantTotal)
			}
		})
	}
}

func TestListFilterPagination(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		createTestProject(t, q, "Page Item", fmt.Sprintf("page-item-%d", i), "draft")
	}

	first, err := q.ListProjects(ctx, ListFilter{Status: FilterAll, Page: 1, PerPage: PageSizeGrid})
	if err != nil {
		t.Fatalf("ListProjects page 1: %v", err)
	}
	if len(first) != PageSizeGrid {
		t.Errorf("page 1 has %d items, want %d", len(first), PageSizeGrid)
	}

	second, err := q.ListProjects(ctx, ListFilter{Status: FilterAll, Page: 2, PerPage: PageSizeGrid})
	if err != nil {
		t.Fatalf("ListProjects page 2: %v", err)
	}
	if len(second) != 3 {
		t.Errorf("page 2 has %d items, want 3", len(second))
	}
}
