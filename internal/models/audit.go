// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one admin mutation (category deleted, settings saved,
// proposal sent). Kept append-only for back-office accountability.
type AuditEntry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	Action    string    `json:"action"`  // "create", "update", "delete", "transition"
	Subject   string    `json:"subject"` // "category:<id>", "seo_settings", ...
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
