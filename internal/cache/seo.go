// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// seo.go caches the SEO settings document in Valkey so storefront requests
// don't re-read the singleton row on every resolution. The cache is
// invalidated whenever the admin saves the settings.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shoppress/internal/models"
)

const (
	seoSettingsKey = "seo:settings"

	// DefaultSEOTTL bounds staleness if an invalidation is ever missed.
	DefaultSEOTTL = 10 * time.Minute
)

// SEOCache holds the marshaled SEO settings document in Valkey.
type SEOCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSEOCache creates an SEO settings cache backed by the given client.
func NewSEOCache(client *redis.Client, ttl time.Duration) *SEOCache {
	if ttl == 0 {
		ttl = DefaultSEOTTL
	}
	return &SEOCache{client: client, ttl: ttl}
}

// Get returns the cached settings document, or nil on miss.
func (c *SEOCache) Get(ctx context.Context) *models.SEOSettings {
	payload, err := c.client.Get(ctx, seoSettingsKey).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("seo cache get error", "error", err)
		return nil
	}

	var settings models.SEOSettings
	if err := json.Unmarshal(payload, &settings); err != nil {
		slog.Warn("seo cache unmarshal error", "error", err)
		return nil
	}
	return &settings
}

// Set stores the settings document with the configured TTL.
func (c *SEOCache) Set(ctx context.Context, settings *models.SEOSettings) {
	payload, err := json.Marshal(settings)
	if err != nil {
		slog.Warn("seo cache marshal error", "error", err)
		return
	}
	if err := c.client.Set(ctx, seoSettingsKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("seo cache set error", "error", err)
	}
}

// Invalidate drops the cached document. Called after an admin save.
func (c *SEOCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, seoSettingsKey).Err(); err != nil {
		slog.Warn("seo cache invalidate error", "error", err)
	}
}
