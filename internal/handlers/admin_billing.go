// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"shoppress/internal/billing"
	"shoppress/internal/models"
	"shoppress/internal/store"
)

// attachmentURLTTL bounds how long a presigned attachment link stays
// valid.
const attachmentURLTTL = 15 * time.Minute

// billingDocumentRequest carries the editable fields shared by proposals
// and invoices. Amounts and totals are never taken from the client; they
// are recomputed here from quantity and rate.
type billingDocumentRequest struct {
	ClientName    string              `json:"client_name"`
	ClientEmail   string              `json:"client_email"`
	Items         []models.LineItem   `json:"items"`
	DiscountType  models.DiscountType `json:"discount_type"`
	DiscountValue float64             `json:"discount_value"`
	TaxRate       float64             `json:"tax_rate"`
	Notes         string              `json:"notes"`
	Attachments   []string            `json:"attachments"`
	DueAt         *time.Time          `json:"due_at,omitempty"`
}

func (req *billingDocumentRequest) validate() []string {
	problems := billing.ValidateDocument(req.ClientName, req.ClientEmail, req.Items)
	switch req.DiscountType {
	case models.DiscountNone, models.DiscountPercentage, models.DiscountFixed:
	default:
		problems = append(problems, "discount type must be percentage or fixed")
	}
	if req.DiscountValue < 0 {
		problems = append(problems, "discount value must not be negative")
	}
	if req.TaxRate < 0 {
		problems = append(problems, "tax rate must not be negative")
	}
	return problems
}

// --- Proposals ---

// ProposalsList returns all proposals.
func (a *Admin) ProposalsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.proposals.List()
	if err != nil {
		slog.Error("list proposals failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list proposals failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// ProposalGet returns one proposal, including its share token so the
// operator can copy the client link.
func (a *Admin) ProposalGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := a.proposals.FindByID(id)
	if err != nil {
		slog.Error("find proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "find proposal failed")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"proposal":    p,
		"share_token": p.ShareToken,
	})
}

// ProposalCreate inserts a new draft proposal with recomputed totals.
// New documents always use the after-discount tax base.
func (a *Admin) ProposalCreate(w http.ResponseWriter, r *http.Request) {
	var req billingDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": problems})
		return
	}

	items := billing.NormalizeItems(req.Items)
	created, err := a.proposals.Create(&models.Proposal{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Items:         items,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		TaxRate:       req.TaxRate,
		TaxMode:       models.TaxAfterDiscount,
		Totals:        billing.Compute(items, req.DiscountType, req.DiscountValue, req.TaxRate, models.TaxAfterDiscount),
		Notes:         req.Notes,
		Attachments:   req.Attachments,
		CreatedBy:     actorID(r),
	})
	if err != nil {
		slog.Error("create proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "create proposal failed")
		return
	}

	a.audit.Record(actorID(r), "create", "proposal:"+created.ID.String(), created.Number)
	respondJSON(w, http.StatusCreated, created)
}

// ProposalUpdate replaces a draft proposal's content. The stored tax
// mode is preserved so legacy documents keep recomputing to their
// original totals.
func (a *Admin) ProposalUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req billingDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": problems})
		return
	}

	current, err := a.proposals.FindByID(id)
	if err != nil {
		slog.Error("find proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update proposal failed")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}

	items := billing.NormalizeItems(req.Items)
	err = a.proposals.Update(&models.Proposal{
		ID:            id,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Items:         items,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		TaxRate:       req.TaxRate,
		TaxMode:       current.TaxMode,
		Totals:        billing.Compute(items, req.DiscountType, req.DiscountValue, req.TaxRate, current.TaxMode),
		Notes:         req.Notes,
		Attachments:   req.Attachments,
	})
	if errors.Is(err, store.ErrNotDraft) {
		respondError(w, http.StatusConflict, "proposal is no longer editable")
		return
	}
	if err != nil {
		slog.Error("update proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update proposal failed")
		return
	}

	a.audit.Record(actorID(r), "update", "proposal:"+id.String(), current.Number)
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ProposalDelete removes a draft proposal.
func (a *Admin) ProposalDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := a.proposals.Delete(id)
	if errors.Is(err, store.ErrNotDraft) {
		respondError(w, http.StatusConflict, "sent proposals cannot be deleted")
		return
	}
	if err != nil {
		slog.Error("delete proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete proposal failed")
		return
	}

	a.audit.Record(actorID(r), "delete", "proposal:"+id.String(), "")
	respondJSON(w, http.StatusNoContent, nil)
}

type transitionRequest struct {
	Status string `json:"status"`
}

// ProposalTransition moves a proposal along its lifecycle (send, expire).
// Accept/reject belong to the client and go through the share link.
func (a *Admin) ProposalTransition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req transitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	to := models.ProposalStatus(req.Status)
	switch to {
	case models.ProposalSent, models.ProposalExpired:
	default:
		respondError(w, http.StatusBadRequest, "status must be sent or expired")
		return
	}

	err := a.proposals.Transition(id, to)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("transition proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "transition proposal failed")
		return
	}

	a.audit.Record(actorID(r), "transition", "proposal:"+id.String(), string(to))
	respondJSON(w, http.StatusOK, map[string]string{"status": string(to)})
}

type convertRequest struct {
	DueAt *time.Time `json:"due_at"`
}

// ProposalConvert turns an accepted proposal into an invoice.
func (a *Admin) ProposalConvert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req convertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := a.proposals.ConvertToInvoice(id, req.DueAt)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		respondError(w, http.StatusConflict, "only accepted proposals can be converted")
		return
	}
	if err != nil {
		slog.Error("convert proposal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "convert proposal failed")
		return
	}

	a.audit.Record(actorID(r), "transition", "proposal:"+id.String(), "converted to "+inv.Number)
	respondJSON(w, http.StatusCreated, inv)
}

// --- Invoices ---

// InvoicesList returns all invoices.
func (a *Admin) InvoicesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.invoices.List()
	if err != nil {
		slog.Error("list invoices failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list invoices failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// InvoiceGet returns one invoice.
func (a *Admin) InvoiceGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	inv, err := a.invoices.FindByID(id)
	if err != nil {
		slog.Error("find invoice failed", "error", err)
		respondError(w, http.StatusInternalServerError, "find invoice failed")
		return
	}
	if inv == nil {
		respondError(w, http.StatusNotFound, "invoice not found")
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// InvoiceCreate inserts a new standalone draft invoice.
func (a *Admin) InvoiceCreate(w http.ResponseWriter, r *http.Request) {
	var req billingDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": problems})
		return
	}

	items := billing.NormalizeItems(req.Items)
	created, err := a.invoices.Create(&models.Invoice{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Items:         items,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		TaxRate:       req.TaxRate,
		TaxMode:       models.TaxAfterDiscount,
		Totals:        billing.Compute(items, req.DiscountType, req.DiscountValue, req.TaxRate, models.TaxAfterDiscount),
		Notes:         req.Notes,
		Attachments:   req.Attachments,
		CreatedBy:     actorID(r),
		DueAt:         req.DueAt,
	})
	if err != nil {
		slog.Error("create invoice failed", "error", err)
		respondError(w, http.StatusInternalServerError, "create invoice failed")
		return
	}

	a.audit.Record(actorID(r), "create", "invoice:"+created.ID.String(), created.Number)
	respondJSON(w, http.StatusCreated, created)
}

// InvoiceUpdate replaces a draft invoice's content, preserving the
// stored tax mode.
func (a *Admin) InvoiceUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req billingDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": problems})
		return
	}

	current, err := a.invoices.FindByID(id)
	if err != nil {
		slog.Error("find invoice failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update invoice failed")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "invoice not found")
		return
	}

	items := billing.NormalizeItems(req.Items)
	err = a.invoices.Update(&models.Invoice{
		ID:            id,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Items:         items,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		TaxRate:       req.TaxRate,
		TaxMode:       current.TaxMode,
		Totals:        billing.Compute(items, req.DiscountType, req.DiscountValue, req.TaxRate, current.TaxMode),
		Notes:         req.Notes,
		Attachments:   req.Attachments,
		DueAt:         req.DueAt,
	})
	if errors.Is(err, store.ErrNotDraft) {
		respondError(w, http.StatusConflict, "invoice is no longer editable")
		return
	}
	if err != nil {
		slog.Error("update invoice failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update invoice failed")
		return
	}

	a.audit.Record(actorID(r), "update", "invoice:"+id.String(), current.Number)
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// InvoiceDelete removes a draft invoice.
func (a *Admin) InvoiceDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := a.invoices.Delete(id)
	if errors.Is(err, store.ErrNotDraft) {
		respondError(w, http.StatusConflict, "issued invoices cannot be deleted")
		return
	}
	if err != nil {
		slog.Error("delete invoice failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete invoice failed")
		return
	}

	a.audit.Record(actorID(r), "delete", "invoice:"+id.String(), "")
	respondJSON(w, http.StatusNoContent, nil)
}

// InvoiceTransition moves an invoice along its lifecycle (send, pay, void).
func (a *Admin) InvoiceTransition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req transitionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	to := models.InvoiceStatus(req.Status)
	switch to {
	case models.InvoiceSent, models.InvoicePaid, models.InvoiceVoid:
	default:
		respondError(w, http.StatusBadRequest, "status must be sent, paid, or void")
		return
	}

	err := a.invoices.Transition(id, to)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "invoice not found")
		return
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("transition invoice failed", "error", err)
		respondError(w, http.StatusInternalServerError, "transition invoice failed")
		return
	}

	a.audit.Record(actorID(r), "transition", "invoice:"+id.String(), string(to))
	respondJSON(w, http.StatusOK, map[string]string{"status": string(to)})
}

// AttachmentURL returns a short-lived presigned URL for a private
// attachment key. Requires S3 to be configured.
func (a *Admin) AttachmentURL(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondError(w, http.StatusNotImplemented, "object storage is not configured")
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := a.storageClient.PresignedURL(r.Context(), a.storageClient.PrivateBucket(), key, attachmentURLTTL)
	if err != nil {
		slog.Error("presign attachment failed", "error", err)
		respondError(w, http.StatusInternalServerError, "presign attachment failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
