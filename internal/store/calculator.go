// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shoppress/internal/models"
	"shoppress/internal/slug"
)

// CalculatorStore manages estimate calculators. The step/field structure
// is stored as a JSONB document on the calculator row.
type CalculatorStore struct {
	db *sql.DB
}

// NewCalculatorStore returns a new CalculatorStore.
func NewCalculatorStore(db *sql.DB) *CalculatorStore {
	return &CalculatorStore{db: db}
}

const calculatorColumns = `id, slug, title, steps, default_hourly_rate, min_hourly_rate, max_hourly_rate, active, created_at, updated_at`

// scanCalculator scans a row, unmarshaling the steps document.
func scanCalculator(scanner interface{ Scan(...any) error }) (*models.Calculator, error) {
	var c models.Calculator
	var steps []byte
	err := scanner.Scan(
		&c.ID, &c.Slug, &c.Title, &steps,
		&c.DefaultHourlyRate, &c.MinHourlyRate, &c.MaxHourlyRate,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &c.Steps); err != nil {
		return nil, fmt.Errorf("unmarshal calculator steps: %w", err)
	}
	return &c, nil
}

// List returns all calculators, including inactive ones. Back office only.
func (s *CalculatorStore) List() ([]models.Calculator, error) {
	rows, err := s.db.Query(`SELECT ` + calculatorColumns + ` FROM calculators ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}
	defer rows.Close()

	var items []models.Calculator
	for rows.Next() {
		c, err := scanCalculator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calculator: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a calculator by ID. Returns nil if not found.
func (s *CalculatorStore) FindByID(id uuid.UUID) (*models.Calculator, error) {
	row := s.db.QueryRow(`SELECT `+calculatorColumns+` FROM calculators WHERE id = $1`, id)
	c, err := scanCalculator(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find calculator by id: %w", err)
	}
	return c, nil
}

// FindActiveBySlug retrieves an active calculator by slug for the public
// storefront. Returns nil if not found or inactive.
func (s *CalculatorStore) FindActiveBySlug(calcSlug string) (*models.Calculator, error) {
	row := s.db.QueryRow(`
		SELECT `+calculatorColumns+` FROM calculators
		WHERE slug = $1 AND active = TRUE`, calcSlug)
	c, err := scanCalculator(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find calculator by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new calculator with its step document.
func (s *CalculatorStore) Create(c *models.Calculator) (*models.Calculator, error) {
	steps, err := json.Marshal(c.Steps)
	if err != nil {
		return nil, fmt.Errorf("marshal calculator steps: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO calculators (slug, title, steps, default_hourly_rate, min_hourly_rate, max_hourly_rate, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+calculatorColumns,
		slug.Generate(c.Title), c.Title, steps,
		c.DefaultHourlyRate, c.MinHourlyRate, c.MaxHourlyRate, c.Active,
	)
	result, err := scanCalculator(row)
	if err != nil {
		return nil, fmt.Errorf("create calculator: %w", err)
	}
	return result, nil
}

// Update replaces a calculator's definition. Past submissions are not
// touched: they carry their own snapshot of selections and totals.
func (s *CalculatorStore) Update(c *models.Calculator) error {
	steps, err := json.Marshal(c.Steps)
	if err != nil {
		return fmt.Errorf("marshal calculator steps: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE calculators SET
			title = $1, steps = $2, default_hourly_rate = $3,
			min_hourly_rate = $4, max_hourly_rate = $5, active = $6, updated_at = $7
		WHERE id = $8`,
		c.Title, steps, c.DefaultHourlyRate,
		c.MinHourlyRate, c.MaxHourlyRate, c.Active, time.Now(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update calculator: %w", err)
	}
	return nil
}

// Delete removes a calculator. Fails if submissions reference it.
func (s *CalculatorStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM calculators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete calculator: %w", err)
	}
	return nil
}
