// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// StoreSetting represents a single configuration key-value pair.
type StoreSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreSettings is a convenience map for accessing settings by key. It is
// loaded once per request and passed explicitly to the components that need
// it, rather than fetched ad hoc.
type StoreSettings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s StoreSettings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Well-known setting keys.
const (
	SettingStoreName    = "store_name"
	SettingCurrency     = "currency"
	SettingContactEmail = "contact_email"
	SettingBaseURL      = "base_url"
)
