// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"shoppress/internal/models"
)

// seoSettingsID is the primary key of the singleton settings row.
const seoSettingsID = "main"

// SEOSettingStore persists the site-wide SEO configuration as a single
// JSONB document.
type SEOSettingStore struct {
	db *sql.DB
}

// NewSEOSettingStore returns a new SEOSettingStore.
func NewSEOSettingStore(db *sql.DB) *SEOSettingStore {
	return &SEOSettingStore{db: db}
}

// Load returns the stored settings document, or defaults if none has
// been saved yet.
func (s *SEOSettingStore) Load() (*models.SEOSettings, error) {
	var doc []byte
	err := s.db.QueryRow(`SELECT doc FROM seo_settings WHERE id = $1`, seoSettingsID).Scan(&doc)
	if err == sql.ErrNoRows {
		return models.DefaultSEOSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load seo settings: %w", err)
	}

	var settings models.SEOSettings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return nil, fmt.Errorf("unmarshal seo settings: %w", err)
	}
	return &settings, nil
}

// Save upserts the whole settings document. Pattern rule order is
// preserved exactly as given; resolution precedence follows it.
func (s *SEOSettingStore) Save(settings *models.SEOSettings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal seo settings: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO seo_settings (id, doc, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		seoSettingsID, doc, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save seo settings: %w", err)
	}
	return nil
}
