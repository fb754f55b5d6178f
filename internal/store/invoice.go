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

	"shoppress/internal/billing"
	"shoppress/internal/models"
)

// InvoiceStore manages invoices, both standalone ones and those created
// by converting an accepted proposal.
type InvoiceStore struct {
	db *sql.DB
}

// NewInvoiceStore returns a new InvoiceStore.
func NewInvoiceStore(db *sql.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

const invoiceColumns = `id, number, client_name, client_email, items, discount_type, discount_value,
	tax_rate, tax_mode, totals, status, notes, attachments, proposal_id, created_by,
	due_at, sent_at, paid_at, created_at, updated_at`

func scanInvoice(scanner interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	var items, totals, attachments []byte
	err := scanner.Scan(
		&inv.ID, &inv.Number, &inv.ClientName, &inv.ClientEmail, &items,
		&inv.DiscountType, &inv.DiscountValue, &inv.TaxRate, &inv.TaxMode,
		&totals, &inv.Status, &inv.Notes, &attachments, &inv.ProposalID,
		&inv.CreatedBy, &inv.DueAt, &inv.SentAt, &inv.PaidAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal invoice items: %w", err)
	}
	if err := json.Unmarshal(totals, &inv.Totals); err != nil {
		return nil, fmt.Errorf("unmarshal invoice totals: %w", err)
	}
	if err := json.Unmarshal(attachments, &inv.Attachments); err != nil {
		return nil, fmt.Errorf("unmarshal invoice attachments: %w", err)
	}
	return &inv, nil
}

// List returns all invoices, newest first.
func (s *InvoiceStore) List() ([]models.Invoice, error) {
	rows, err := s.db.Query(`SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var items []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		items = append(items, *inv)
	}
	return items, rows.Err()
}

// FindByID retrieves an invoice by ID. Returns nil if not found.
func (s *InvoiceStore) FindByID(id uuid.UUID) (*models.Invoice, error) {
	row := s.db.QueryRow(`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invoice by id: %w", err)
	}
	return inv, nil
}

// Create inserts a new draft invoice with a generated sequential number.
func (s *InvoiceStore) Create(inv *models.Invoice) (*models.Invoice, error) {
	number, err := s.nextNumber()
	if err != nil {
		return nil, err
	}

	items, totals, attachments, err := marshalDocumentFields(inv.Items, inv.Totals, inv.Attachments)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO invoices (number, client_name, client_email, items, discount_type, discount_value,
			tax_rate, tax_mode, totals, notes, attachments, created_by, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+invoiceColumns,
		number, inv.ClientName, inv.ClientEmail, items, inv.DiscountType, inv.DiscountValue,
		inv.TaxRate, inv.TaxMode, totals, inv.Notes, attachments, inv.CreatedBy, inv.DueAt,
	)
	result, err := scanInvoice(row)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return result, nil
}

// Update replaces the editable fields of a draft invoice. Returns
// ErrNotDraft once the invoice has been sent.
func (s *InvoiceStore) Update(inv *models.Invoice) error {
	current, err := s.FindByID(inv.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}
	if !current.IsDraft() {
		return ErrNotDraft
	}

	items, totals, attachments, err := marshalDocumentFields(inv.Items, inv.Totals, inv.Attachments)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE invoices SET
			client_name = $1, client_email = $2, items = $3, discount_type = $4,
			discount_value = $5, tax_rate = $6, tax_mode = $7, totals = $8,
			notes = $9, attachments = $10, due_at = $11, updated_at = $12
		WHERE id = $13`,
		inv.ClientName, inv.ClientEmail, items, inv.DiscountType,
		inv.DiscountValue, inv.TaxRate, inv.TaxMode, totals,
		inv.Notes, attachments, inv.DueAt, time.Now(), inv.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete removes a draft invoice. Sent, paid, and void invoices are part
// of the billing record and cannot be removed.
func (s *InvoiceStore) Delete(id uuid.UUID) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	if !current.IsDraft() {
		return ErrNotDraft
	}

	_, err = s.db.Exec(`DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// Transition moves an invoice to a new status, stamping sent_at and
// paid_at where the lifecycle calls for it.
func (s *InvoiceStore) Transition(id uuid.UUID, to models.InvoiceStatus) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}
	if !billing.CanTransitionInvoice(current.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	now := time.Now()
	query := `UPDATE invoices SET status = $1, updated_at = $2`
	args := []any{to, now}

	switch to {
	case models.InvoiceSent:
		query += `, sent_at = $3 WHERE id = $4`
		args = append(args, now, id)
	case models.InvoicePaid:
		query += `, paid_at = $3 WHERE id = $4`
		args = append(args, now, id)
	default:
		query += ` WHERE id = $3`
		args = append(args, id)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("transition invoice: %w", err)
	}
	return nil
}

func (s *InvoiceStore) nextNumber() (string, error) {
	year := time.Now().Year()
	pattern := fmt.Sprintf("INV-%d-%%", year)

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM invoices WHERE number LIKE $1`, pattern).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", year, count+1), nil
}
