// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one billable row on an invoice or proposal. Amount is always
// recomputed from Quantity and Rate on the server; client-supplied amounts
// are ignored.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Rate        float64   `json:"rate"`
	Amount      float64   `json:"amount"`
}

// DiscountType selects how a document-level discount is interpreted.
type DiscountType string

const (
	DiscountNone       DiscountType = ""
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// TaxMode records which base the tax was computed on. New documents use
// TaxAfterDiscount; TaxOnSubtotal exists so invoices created by the legacy
// flow keep recomputing to their original totals.
type TaxMode string

const (
	TaxAfterDiscount TaxMode = "after_discount"
	TaxOnSubtotal    TaxMode = "on_subtotal"
)

// Totals holds the computed money summary of a billing document.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

// ProposalStatus is the one-way lifecycle of a proposal.
type ProposalStatus string

const (
	ProposalDraft     ProposalStatus = "draft"
	ProposalSent      ProposalStatus = "sent"
	ProposalViewed    ProposalStatus = "viewed"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalExpired   ProposalStatus = "expired"
	ProposalConverted ProposalStatus = "converted"
)

// InvoiceStatus is the simpler invoice lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

// Proposal is a quote sent to a client. Line items and totals are stored as
// a JSONB document; the document is mutable only while in draft.
type Proposal struct {
	ID            uuid.UUID      `json:"id"`
	Number        string         `json:"number"`
	ClientName    string         `json:"client_name"`
	ClientEmail   string         `json:"client_email"`
	Items         []LineItem     `json:"items"`
	DiscountType  DiscountType   `json:"discount_type"`
	DiscountValue float64        `json:"discount_value"`
	TaxRate       float64        `json:"tax_rate"`
	TaxMode       TaxMode        `json:"tax_mode"`
	Totals        Totals         `json:"totals"`
	Status        ProposalStatus `json:"status"`
	Notes         string         `json:"notes"`
	Attachments   []string       `json:"attachments,omitempty"` // S3 keys, served via presigned URLs
	ShareToken    string         `json:"-"`
	CreatedBy     uuid.UUID      `json:"created_by"`
	SentAt        *time.Time     `json:"sent_at"`
	ViewedAt      *time.Time     `json:"viewed_at"`
	RespondedAt   *time.Time     `json:"responded_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Invoice is a billing document issued to a client.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	Number        string        `json:"number"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email"`
	Items         []LineItem    `json:"items"`
	DiscountType  DiscountType  `json:"discount_type"`
	DiscountValue float64       `json:"discount_value"`
	TaxRate       float64       `json:"tax_rate"`
	TaxMode       TaxMode       `json:"tax_mode"`
	Totals        Totals        `json:"totals"`
	Status        InvoiceStatus `json:"status"`
	Notes         string        `json:"notes"`
	Attachments   []string      `json:"attachments,omitempty"`
	ProposalID    *uuid.UUID    `json:"proposal_id"` // set when converted from an accepted proposal
	CreatedBy     uuid.UUID     `json:"created_by"`
	DueAt         *time.Time    `json:"due_at"`
	SentAt        *time.Time    `json:"sent_at"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsDraft reports whether the proposal can still be edited.
func (p *Proposal) IsDraft() bool { return p.Status == ProposalDraft }

// IsDraft reports whether the invoice can still be edited.
func (i *Invoice) IsDraft() bool { return i.Status == InvoiceDraft }
