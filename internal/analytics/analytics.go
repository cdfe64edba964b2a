// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package analytics aggregates content statistics for the dashboard:
// per-status counts, creation trends bucketed by range, and category
// breakdowns.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// Range is the trailing window of a trend query, in days.
type Range int

// Supported trend ranges.
const (
	Range7Days   Range = 7
	Range30Days  Range = 30
	Range90Days  Range = 90
	Range365Days Range = 365
)

// DefaultRange is used when a request carries no range or an
// unsupported one.
const DefaultRange = Range30Days

// topCategoryLimit caps the category breakdown.
const topCategoryLimit = 10

// ParseRange maps a request parameter to a supported range, falling
// back to the default for anything unrecognized.
func ParseRange(days int) Range {
	switch Range(days) {
	case Range7Days, Range30Days, Range90Days, Range365Days:
		return Range(days)
	default:
		return DefaultRange
	}
}

// bucketFormat returns the SQLite strftime format that buckets the
// range: days for short windows, weeks for a quarter, months for a year.
func (r Range) bucketFormat() string {
	switch {
	case r <= Range30Days:
		return "%Y-%m-%d"
	case r <= Range90Days:
		return "%Y-%W"
	default:
		return "%Y-%m"
	}
}

// Granularity names the bucket size for chart labels.
func (r Range) Granularity() string {
	switch {
	case r <= Range30Days:
		return "day"
	case r <= Range90Days:
		return "week"
	default:
		return "month"
	}
}

// Overview is the dashboard summary card data.
type Overview struct {
	Projects         store.StatusCounts `json:"projects"`
	Posts            store.StatusCounts `json:"posts"`
	News             store.StatusCounts `json:"news"`
	FeaturedProjects int64              `json:"featured_projects"`
	MediaByType      map[string]int64   `json:"media_by_type"`
	UnreadMessages   int64              `json:"unread_messages"`
}

// Trend is one entity kind's creation history over a range.
type Trend struct {
	Kind        string             `json:"kind"`
	Range       int                `json:"range_days"`
	Granularity string             `json:"granularity"`
	Points      []store.TrendPoint `json:"points"`
}

// Service computes analytics on top of the store.
type Service struct {
	queries *store.Queries
}

// New creates an analytics service.
func New(queries *store.Queries) *Service {
	return &Service{queries: queries}
}

// Overview returns the per-entity counts shown on the dashboard home.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var o Overview
	var err error

	if o.Projects, err = s.queries.CountByStatus(ctx, model.KindProject); err != nil {
		return o, fmt.Errorf("counting projects: %w", err)
	}
	if o.Posts, err = s.queries.CountByStatus(ctx, model.KindPost); err != nil {
		return o, fmt.Errorf("counting posts: %w", err)
	}
	if o.News, err = s.queries.CountByStatus(ctx, model.KindNews); err != nil {
		return o, fmt.Errorf("counting news: %w", err)
	}
	if o.FeaturedProjects, err = s.queries.CountFeaturedProjects(ctx); err != nil {
		return o, fmt.Errorf("counting featured projects: %w", err)
	}
	if o.MediaByType, err = s.queries.CountMediaByType(ctx); err != nil {
		return o, fmt.Errorf("counting media: %w", err)
	}
	if o.UnreadMessages, err = s.queries.CountUnreadMessages(ctx); err != nil {
		return o, fmt.Errorf("counting unread messages: %w", err)
	}
	return o, nil
}

// Trend returns the creation trend of one content kind over the range.
func (s *Service) Trend(ctx context.Context, kind string, r Range) (Trend, error) {
	since := time.Now().AddDate(0, 0, -int(r))
	points, err := s.queries.CreationTrend(ctx, kind, since, r.bucketFormat())
	if err != nil {
		return Trend{}, fmt.Errorf("computing %s trend: %w", kind, err)
	}
	if points == nil {
		points = []store.TrendPoint{}
	}
	return Trend{
		Kind:        kind,
		Range:       int(r),
		Granularity: r.Granularity(),
		Points:      points,
	}, nil
}

// sparklineDays is the trailing window of the dashboard home chart.
const sparklineDays = 180

// Sparkline holds the monthly creation counts shown on the dashboard
// home, covering the trailing six months.
type Sparkline struct {
	Projects []store.TrendPoint `json:"projects"`
	Posts    []store.TrendPoint `json:"posts"`
}

// HomeSparkline returns monthly project and post creation counts for
// the last six months.
func (s *Service) HomeSparkline(ctx context.Context) (Sparkline, error) {
	since := time.Now().AddDate(0, 0, -sparklineDays)

	projects, err := s.queries.CreationTrend(ctx, model.KindProject, since, "%Y-%m")
	if err != nil {
		return Sparkline{}, fmt.Errorf("computing project sparkline: %w", err)
	}
	posts, err := s.queries.CreationTrend(ctx, model.KindPost, since, "%Y-%m")
	if err != nil {
		return Sparkline{}, fmt.Errorf("computing post sparkline: %w", err)
	}
	if projects == nil {
		projects = []store.TrendPoint{}
	}
	if posts == nil {
		posts = []store.TrendPoint{}
	}
	return Sparkline{Projects: projects, Posts: posts}, nil
}

// TopCategories returns the categories holding the most content of a
// kind, capped at ten.
func (s *Service) TopCategories(ctx context.Context, kind string) ([]model.CategoryCount, error) {
	counts, err := s.queries.CategoryBreakdown(ctx, kind, topCategoryLimit)
	if err != nil {
		return nil, fmt.Errorf("computing category breakdown: %w", err)
	}
	if counts == nil {
		counts = []model.CategoryCount{}
	}
	return counts, nil
}
