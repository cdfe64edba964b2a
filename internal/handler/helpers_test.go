// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"one", "1", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"not a number", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req = requestWithURLParams(req, map[string]string{"id": tt.raw})

			got, err := ParseIDParam(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("id = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/?page=3", 3},
		{"/?page=1", 1},
		{"/?page=0", 1},
		{"/?page=-2", 1},
		{"/?page=abc", 1},
		{"/", 1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.url, nil)
		if got := ParsePageParam(req); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestListFilterFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/?status=draft&q=%20golang%20&category=7&page=2", nil)
	f := listFilterFromRequest(req, 20)

	if f.Status != "draft" {
		t.Errorf("Status = %q, want draft", f.Status)
	}
	if f.Search != "golang" {
		t.Errorf("Search = %q, want golang", f.Search)
	}
	if f.CategoryID != 7 {
		t.Errorf("CategoryID = %d, want 7", f.CategoryID)
	}
	if f.Page != 2 {
		t.Errorf("Page = %d, want 2", f.Page)
	}
	if f.PerPage != 20 {
		t.Errorf("PerPage = %d, want 20", f.PerPage)
	}

	t.Run("category all is ignored", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/?category=all", nil)
		if f := listFilterFromRequest(req, 12); f.CategoryID != 0 {
			t.Errorf("CategoryID = %d, want 0", f.CategoryID)
		}
	})
}

func TestBuildPagination(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := buildPagination(2, 50, 20)
		if p.Page != 2 || p.TotalPages != 3 {
			t.Errorf("page/totalPages = %d/%d, want 2/3", p.Page, p.TotalPages)
		}
		if !p.HasPrev || !p.HasNext {
			t.Error("middle page should have both neighbors")
		}
		if p.PrevPage != 1 || p.NextPage != 3 {
			t.Errorf("prev/next = %d/%d, want 1/3", p.PrevPage, p.NextPage)
		}
	})

	t.Run("page beyond total clamps to last", func(t *testing.T) {
		p := buildPagination(99, 50, 20)
		if p.Page != 3 {
			t.Errorf("Page = %d, want 3", p.Page)
		}
		if p.HasNext {
			t.Error("last page should not have a next page")
		}
	})

	t.Run("empty result set", func(t *testing.T) {
		p := buildPagination(1, 0, 20)
		if p.Page != 1 || p.TotalPages != 1 {
			t.Errorf("page/totalPages = %d/%d, want 1/1", p.Page, p.TotalPages)
		}
		if p.HasPrev || p.HasNext {
			t.Error("single page should have no neighbors")
		}
	})
}

func TestParseIDList(t *testing.T) {
	got := parseIDList([]string{"1", " 2 ", "abc", "-5", "0", "300"})
	want := []int64{1, 2, 300}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseIDList = %v, want %v", got, want)
	}

	if got := parseIDList(nil); len(got) != 0 {
		t.Errorf("parseIDList(nil) = %v, want empty", got)
	}
}

func TestParseTagInput(t *testing.T) {
	if got := parseTagInput(""); got != nil {
		t.Errorf("blank input = %v, want nil", got)
	}
	if got := parseTagInput("   "); got != nil {
		t.Errorf("whitespace input = %v, want nil", got)
	}
	if got := parseTagInput("go, web,sqlite"); len(got) != 3 {
		t.Errorf("got %d parts, want 3", len(got))
	}
}
