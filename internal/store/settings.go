// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

var siteSettingColumns = []string{
	"id", "site_name", "tagline", "logo", "favicon", "meta_description",
	"google_analytics_id", "contact_email",
}

func scanSiteSetting(row sq.RowScanner) (model.SiteSetting, error) {
	var s model.SiteSetting
	err := row.Scan(
		&s.ID, &s.SiteName, &s.Tagline, &s.Logo, &s.Favicon, &s.MetaDescription,
		&s.GoogleAnalyticsID, &s.ContactEmail,
	)
	return s, err
}

// SiteSettingParams holds the singleton settings fields.
type SiteSettingParams struct {
	SiteName          string
	Tagline           string
	Logo              string
	Favicon           string
	MetaDescription   string
	GoogleAnalyticsID string
	ContactEmail      string
}

// CreateSiteSetting inserts the singleton settings row. It returns
// ErrSettingsExist when a row is already present.
func (q *Queries) CreateSiteSetting(ctx context.Context, arg SiteSettingParams) (model.SiteSetting, error) {
	var count int64
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM site_settings").Scan(&count); err != nil {
		return model.SiteSetting{}, err
	}
	if count > 0 {
		return model.SiteSetting{}, ErrSettingsExist
	}

	query, args, err := q.sb.Insert("site_settings").
		Columns("site_name", "tagline", "logo", "favicon", "meta_description",
			"google_analytics_id", "contact_email").
		Values(arg.SiteName, arg.Tagline, arg.Logo, arg.Favicon, arg.MetaDescription,
			arg.GoogleAnalyticsID, arg.ContactEmail).
		Suffix("RETURNING " + strings.Join(siteSettingColumns, ", ")).
		ToSql()
	if err != nil {
		return model.SiteSetting{}, fmt.Errorf("building insert: %w", err)
	}
	return scanSiteSetting(q.db.QueryRowContext(ctx, query, args...))
}

// GetSiteSetting returns the singleton settings row.
func (q *Queries) GetSiteSetting(ctx context.Context) (model.SiteSetting, error) {
	query := "SELECT " + strings.Join(siteSettingColumns, ", ") +
		" FROM site_settings ORDER BY id ASC LIMIT 1"
	s, err := scanSiteSetting(q.db.QueryRowContext(ctx, query))
	if err != nil {
		return model.SiteSetting{}, mapNoRows(err)
	}
	return s, nil
}

// UpdateSiteSetting updates the singleton settings row in place.
func (q *Queries) UpdateSiteSetting(ctx context.Context, arg SiteSettingParams) (model.SiteSetting, error) {
	current, err := q.GetSiteSetting(ctx)
	if err != nil {
		return model.SiteSetting{}, err
	}
	query, args, err := q.sb.Update("site_settings").
		Set("site_name", arg.SiteName).
		Set("tagline", arg.Tagline).
		Set("logo", arg.Logo).
		Set("favicon", arg.Favicon).
		Set("meta_description", arg.MetaDescription).
		Set("google_analytics_id", arg.GoogleAnalyticsID).
		Set("contact_email", arg.ContactEmail).
		Where(sq.Eq{"id": current.ID}).
		Suffix("RETURNING " + strings.Join(siteSettingColumns, ", ")).
		ToSql()
	if err != nil {
		return model.SiteSetting{}, fmt.Errorf("building update: %w", err)
	}
	s, err := scanSiteSetting(q.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return model.SiteSetting{}, mapNoRows(err)
	}
	return s, nil
}

// EnsureSiteSetting returns the settings row, creating a default one
// on first run so templates always have site metadata to render.
func (q *Queries) EnsureSiteSetting(ctx context.Context) (model.SiteSetting, error) {
	s, err := q.GetSiteSetting(ctx)
	if err == nil {
		return s, nil
	}
	if err != ErrNotFound {
		return model.SiteSetting{}, err
	}
	return q.CreateSiteSetting(ctx, SiteSettingParams{SiteName: "My Portfolio"})
}
