// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"shoppress/internal/models"
)

// MessageStore manages the shared inbox: contact form messages and
// calculator submission notifications land in the same table.
type MessageStore struct {
	db *sql.DB
}

// NewMessageStore returns a new MessageStore.
func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

const messageColumns = `id, name, email, subject, body, source, submission_id, read, created_at`

func scanMessage(scanner interface{ Scan(...any) error }) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := scanner.Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body,
		&m.Source, &m.SubmissionID, &m.Read, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns all messages, newest first.
func (s *MessageStore) List() ([]models.ContactMessage, error) {
	rows, err := s.db.Query(`SELECT ` + messageColumns + ` FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindByID retrieves a message by ID. Returns nil if not found.
func (s *MessageStore) FindByID(id uuid.UUID) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find message by id: %w", err)
	}
	return m, nil
}

// Create records a new inbound message.
func (s *MessageStore) Create(m *models.ContactMessage) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, subject, body, source, submission_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+messageColumns,
		m.Name, m.Email, m.Subject, m.Body, m.Source, m.SubmissionID,
	)
	result, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return result, nil
}

// MarkRead flags a message as handled.
func (s *MessageStore) MarkRead(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE contact_messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// Delete removes a message.
func (s *MessageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// UnreadCount returns how many messages are still unread. The back
// office shows this as an inbox badge.
func (s *MessageStore) UnreadCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_messages WHERE read = FALSE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return n, nil
}
