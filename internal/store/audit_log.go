// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"shoppress/internal/models"
)

// AuditLogStore records back-office mutations for review. Failures to
// write an audit row are logged, never surfaced: auditing must not block
// the operation it describes.
type AuditLogStore struct {
	db *sql.DB
}

// NewAuditLogStore returns a new AuditLogStore.
func NewAuditLogStore(db *sql.DB) *AuditLogStore {
	return &AuditLogStore{db: db}
}

// Record writes one audit entry. Best effort.
func (s *AuditLogStore) Record(actorID uuid.UUID, action, subject, detail string) {
	_, err := s.db.Exec(`
		INSERT INTO audit_log (actor_id, action, subject, detail)
		VALUES ($1, $2, $3, $4)`,
		actorID, action, subject, detail,
	)
	if err != nil {
		slog.Warn("audit log write failed", "action", action, "subject", subject, "error", err)
	}
}

// Recent returns the latest entries, newest first, capped at limit.
func (s *AuditLogStore) Recent(limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT id, actor_id, action, subject, detail, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var items []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Subject, &e.Detail, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
