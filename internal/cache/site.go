// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

const (
	keySiteSetting = "site:setting"
	keySocialLinks = "site:social_links"
)

// SiteCache serves the site-wide data rendered on every public page,
// backed by the store and invalidated on dashboard writes.
type SiteCache struct {
	cache   Cache
	queries *store.Queries
	ttl     time.Duration
}

// NewSiteCache creates a site cache.
func NewSiteCache(c Cache, queries *store.Queries, ttl time.Duration) *SiteCache {
	return &SiteCache{cache: c, queries: queries, ttl: ttl}
}

// Setting returns the singleton site settings, from cache when warm.
func (s *SiteCache) Setting(ctx context.Context) (model.SiteSetting, error) {
	if data, err := s.cache.Get(ctx, keySiteSetting); err == nil {
		var setting model.SiteSetting
		if err := json.Unmarshal(data, &setting); err == nil {
			return setting, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		return model.SiteSetting{}, err
	}

	setting, err := s.queries.EnsureSiteSetting(ctx)
	if err != nil {
		return model.SiteSetting{}, err
	}
	if data, err := json.Marshal(setting); err == nil {
		_ = s.cache.Set(ctx, keySiteSetting, data, s.ttl)
	}
	return setting, nil
}

// SocialLinks returns the ordered social links, from cache when warm.
func (s *SiteCache) SocialLinks(ctx context.Context) ([]model.SocialLink, error) {
	if data, err := s.cache.Get(ctx, keySocialLinks); err == nil {
		var links []model.SocialLink
		if err := json.Unmarshal(data, &links); err == nil {
			return links, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	links, err := s.queries.ListSocialLinks(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(links); err == nil {
		_ = s.cache.Set(ctx, keySocialLinks, data, s.ttl)
	}
	return links, nil
}

// Invalidate drops the cached site data. Called after settings or
// social link writes.
func (s *SiteCache) Invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, keySiteSetting)
	_ = s.cache.Delete(ctx, keySocialLinks)
}
