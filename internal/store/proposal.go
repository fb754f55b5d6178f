// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shoppress/internal/billing"
	"shoppress/internal/models"
)

// ProposalStore manages client proposals. Line items, totals, and
// attachment keys live in JSONB documents on the row; the status column
// drives the one-way lifecycle.
type ProposalStore struct {
	db *sql.DB
}

// NewProposalStore returns a new ProposalStore.
func NewProposalStore(db *sql.DB) *ProposalStore {
	return &ProposalStore{db: db}
}

const proposalColumns = `id, number, client_name, client_email, items, discount_type, discount_value,
	tax_rate, tax_mode, totals, status, notes, attachments, share_token, created_by,
	sent_at, viewed_at, responded_at, created_at, updated_at`

func scanProposal(scanner interface{ Scan(...any) error }) (*models.Proposal, error) {
	var p models.Proposal
	var items, totals, attachments []byte
	err := scanner.Scan(
		&p.ID, &p.Number, &p.ClientName, &p.ClientEmail, &items,
		&p.DiscountType, &p.DiscountValue, &p.TaxRate, &p.TaxMode,
		&totals, &p.Status, &p.Notes, &attachments, &p.ShareToken,
		&p.CreatedBy, &p.SentAt, &p.ViewedAt, &p.RespondedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &p.Items); err != nil {
		return nil, fmt.Errorf("unmarshal proposal items: %w", err)
	}
	if err := json.Unmarshal(totals, &p.Totals); err != nil {
		return nil, fmt.Errorf("unmarshal proposal totals: %w", err)
	}
	if err := json.Unmarshal(attachments, &p.Attachments); err != nil {
		return nil, fmt.Errorf("unmarshal proposal attachments: %w", err)
	}
	return &p, nil
}

// List returns all proposals, newest first.
func (s *ProposalStore) List() ([]models.Proposal, error) {
	rows, err := s.db.Query(`SELECT ` + proposalColumns + ` FROM proposals ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var items []models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a proposal by ID. Returns nil if not found.
func (s *ProposalStore) FindByID(id uuid.UUID) (*models.Proposal, error) {
	row := s.db.QueryRow(`SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id)
	p, err := scanProposal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find proposal by id: %w", err)
	}
	return p, nil
}

// FindByShareToken retrieves a proposal by its public share token.
// Returns nil if not found. Draft proposals are not visible through the
// share link; the token only works once the proposal has been sent.
func (s *ProposalStore) FindByShareToken(token string) (*models.Proposal, error) {
	row := s.db.QueryRow(`
		SELECT `+proposalColumns+` FROM proposals
		WHERE share_token = $1 AND status <> $2`, token, models.ProposalDraft)
	p, err := scanProposal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find proposal by token: %w", err)
	}
	return p, nil
}

// Create inserts a new draft proposal. The number and share token are
// generated here; items and totals are stored as given (the handler has
// already normalized amounts and computed totals).
func (s *ProposalStore) Create(p *models.Proposal) (*models.Proposal, error) {
	number, err := s.nextNumber("P")
	if err != nil {
		return nil, err
	}
	token, err := generateShareToken()
	if err != nil {
		return nil, err
	}

	items, totals, attachments, err := marshalDocumentFields(p.Items, p.Totals, p.Attachments)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO proposals (number, client_name, client_email, items, discount_type, discount_value,
			tax_rate, tax_mode, totals, notes, attachments, share_token, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+proposalColumns,
		number, p.ClientName, p.ClientEmail, items, p.DiscountType, p.DiscountValue,
		p.TaxRate, p.TaxMode, totals, p.Notes, attachments, token, p.CreatedBy,
	)
	result, err := scanProposal(row)
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	return result, nil
}

// Update replaces the editable fields of a draft proposal. Returns
// ErrNotDraft once the proposal has been sent.
func (s *ProposalStore) Update(p *models.Proposal) error {
	current, err := s.FindByID(p.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}
	if !current.IsDraft() {
		return ErrNotDraft
	}

	items, totals, attachments, err := marshalDocumentFields(p.Items, p.Totals, p.Attachments)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE proposals SET
			client_name = $1, client_email = $2, items = $3, discount_type = $4,
			discount_value = $5, tax_rate = $6, tax_mode = $7, totals = $8,
			notes = $9, attachments = $10, updated_at = $11
		WHERE id = $12`,
		p.ClientName, p.ClientEmail, items, p.DiscountType,
		p.DiscountValue, p.TaxRate, p.TaxMode, totals,
		p.Notes, attachments, time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	return nil
}

// Delete removes a draft proposal. Returns ErrNotDraft otherwise; sent
// documents are part of the client-facing record and stay.
func (s *ProposalStore) Delete(id uuid.UUID) error {
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

	_, err = s.db.Exec(`DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	return nil
}

// Transition moves a proposal to a new status, stamping the lifecycle
// timestamp that status carries. Returns ErrInvalidTransition when the
// lifecycle does not allow the move.
func (s *ProposalStore) Transition(id uuid.UUID, to models.ProposalStatus) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}
	if !billing.CanTransitionProposal(current.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	now := time.Now()
	query := `UPDATE proposals SET status = $1, updated_at = $2`
	args := []any{to, now}

	switch to {
	case models.ProposalSent:
		query += `, sent_at = $3 WHERE id = $4`
		args = append(args, now, id)
	case models.ProposalViewed:
		query += `, viewed_at = $3 WHERE id = $4`
		args = append(args, now, id)
	case models.ProposalAccepted, models.ProposalRejected:
		query += `, responded_at = $3 WHERE id = $4`
		args = append(args, now, id)
	default:
		query += ` WHERE id = $3`
		args = append(args, id)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("transition proposal: %w", err)
	}
	return nil
}

// MarkViewed records the first client view through the share link.
// Sent proposals move to viewed; any later status is left untouched.
func (s *ProposalStore) MarkViewed(id uuid.UUID) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}
	if current.Status != models.ProposalSent {
		return nil
	}
	return s.Transition(id, models.ProposalViewed)
}

// ConvertToInvoice creates an invoice from an accepted proposal and marks
// the proposal converted, in one transaction. The invoice copies the
// proposal's items, discount, tax settings, and computed totals.
func (s *ProposalStore) ConvertToInvoice(id uuid.UUID, dueAt *time.Time) (*models.Invoice, error) {
	current, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, sql.ErrNoRows
	}
	if !billing.CanTransitionProposal(current.Status, models.ProposalConverted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, models.ProposalConverted)
	}

	number, err := s.nextInvoiceNumber()
	if err != nil {
		return nil, err
	}

	items, totals, attachments, err := marshalDocumentFields(current.Items, current.Totals, current.Attachments)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	row := tx.QueryRow(`
		INSERT INTO invoices (number, client_name, client_email, items, discount_type, discount_value,
			tax_rate, tax_mode, totals, notes, attachments, proposal_id, created_by, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+invoiceColumns,
		number, current.ClientName, current.ClientEmail, items,
		current.DiscountType, current.DiscountValue, current.TaxRate, current.TaxMode,
		totals, current.Notes, attachments, current.ID, current.CreatedBy, dueAt,
	)
	invoice, err := scanInvoice(row)
	if err != nil {
		return nil, fmt.Errorf("convert proposal: %w", err)
	}

	_, err = tx.Exec(`UPDATE proposals SET status = $1, updated_at = $2 WHERE id = $3`,
		models.ProposalConverted, now, current.ID)
	if err != nil {
		return nil, fmt.Errorf("mark proposal converted: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return invoice, nil
}

// nextNumber produces the next sequential document number for the year,
// e.g. "P-2026-0007". The UNIQUE constraint on number backstops races.
func (s *ProposalStore) nextNumber(prefix string) (string, error) {
	year := time.Now().Year()
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM proposals WHERE number LIKE $1`, pattern).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("next proposal number: %w", err)
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, count+1), nil
}

func (s *ProposalStore) nextInvoiceNumber() (string, error) {
	year := time.Now().Year()
	pattern := fmt.Sprintf("INV-%d-%%", year)

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM invoices WHERE number LIKE $1`, pattern).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", year, count+1), nil
}

// marshalDocumentFields marshals the JSONB columns shared by proposals
// and invoices. Nil slices are stored as empty arrays so scans never see
// SQL NULL.
func marshalDocumentFields(items []models.LineItem, totals models.Totals, attachments []string) ([]byte, []byte, []byte, error) {
	if items == nil {
		items = []models.LineItem{}
	}
	if attachments == nil {
		attachments = []string{}
	}

	itemsDoc, err := json.Marshal(items)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal items: %w", err)
	}
	totalsDoc, err := json.Marshal(totals)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal totals: %w", err)
	}
	attachmentsDoc, err := json.Marshal(attachments)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return itemsDoc, totalsDoc, attachmentsDoc, nil
}

// generateShareToken creates the unguessable token embedded in the
// public proposal link.
func generateShareToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
