// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"testing"
)

func TestSiteSettingSingleton(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	s, err := q.CreateSiteSetting(ctx, SiteSettingParams{
		SiteName:     "Portfolio",
		ContactEmail: "hello@example.com",
	})
	if err != nil {
		t.Fatalf("CreateSiteSetting: %v", err)
	}
	if s.SiteName != "Portfolio" {
		t.Errorf("SiteName = %q", s.SiteName)
	}

	_, err = q.CreateSiteSetting(ctx, SiteSettingParams{SiteName: "Second"})
	if !errors.Is(err, ErrSettingsExist) {
		t.Errorf("second create = %v, want ErrSettingsExist", err)
	}

	updated, err := q.UpdateSiteSetting(ctx, SiteSettingParams{
		SiteName: "Renamed",
		Tagline:  "Building things",
	})
	if err != nil {
		t.Fatalf("UpdateSiteSetting: %v", err)
	}
	if updated.ID != s.ID {
		t.Errorf("update changed row id: %d != %d", updated.ID, s.ID)
	}
	if updated.SiteName != "Renamed" || updated.Tagline != "Building things" {
		t.Errorf("unexpected row after update: %+v", updated)
	}
}

func TestEnsureSiteSetting(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	if _, err := q.GetSiteSetting(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSiteSetting on empty table = %v, want ErrNotFound", err)
	}

	s, err := q.EnsureSiteSetting(ctx)
	if err != nil {
		t.Fatalf("EnsureSiteSetting: %v", err)
	}
	if s.SiteName == "" {
		t.Error("default settings should carry a site name")
	}

	again, err := q.EnsureSiteSetting(ctx)
	if err != nil {
		t.Fatalf("EnsureSiteSetting again: %v", err)
	}
	if again.ID != s.ID {
		t.Errorf("second ensure created a new row: %d != %d", again.ID, s.ID)
	}
}
