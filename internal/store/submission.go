// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"shoppress/internal/models"
)

// SubmissionStore persists calculator submissions. Rows are immutable
// snapshots: they are never updated after insert, so later edits to a
// calculator cannot change a recorded estimate.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore returns a new SubmissionStore.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

const submissionColumns = `id, calculator_id, name, email, selections, total_hours, hourly_rate, total_price, created_at`

func scanSubmission(scanner interface{ Scan(...any) error }) (*models.CalculatorSubmission, error) {
	var sub models.CalculatorSubmission
	var selections []byte
	err := scanner.Scan(
		&sub.ID, &sub.CalculatorID, &sub.Name, &sub.Email, &selections,
		&sub.TotalHours, &sub.HourlyRate, &sub.TotalPrice, &sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(selections, &sub.Selections); err != nil {
		return nil, fmt.Errorf("unmarshal selections: %w", err)
	}
	return &sub, nil
}

// Create records a submission snapshot.
func (s *SubmissionStore) Create(sub *models.CalculatorSubmission) (*models.CalculatorSubmission, error) {
	selections, err := json.Marshal(sub.Selections)
	if err != nil {
		return nil, fmt.Errorf("marshal selections: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO calculator_submissions (calculator_id, name, email, selections, total_hours, hourly_rate, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+submissionColumns,
		sub.CalculatorID, sub.Name, sub.Email, selections,
		sub.TotalHours, sub.HourlyRate, sub.TotalPrice,
	)
	result, err := scanSubmission(row)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return result, nil
}

// FindByID retrieves a submission by ID. Returns nil if not found.
func (s *SubmissionStore) FindByID(id uuid.UUID) (*models.CalculatorSubmission, error) {
	row := s.db.QueryRow(`SELECT `+submissionColumns+` FROM calculator_submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission by id: %w", err)
	}
	return sub, nil
}

// ListByCalculator returns submissions for a calculator, newest first.
func (s *SubmissionStore) ListByCalculator(calculatorID uuid.UUID) ([]models.CalculatorSubmission, error) {
	rows, err := s.db.Query(`
		SELECT `+submissionColumns+` FROM calculator_submissions
		WHERE calculator_id = $1
		ORDER BY created_at DESC`, calculatorID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var items []models.CalculatorSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, *sub)
	}
	return items, rows.Err()
}
