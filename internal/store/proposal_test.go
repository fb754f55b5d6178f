// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"shoppress/internal/billing"
	"shoppress/internal/models"
)

func testProposal(t *testing.T, db *sql.DB, createdBy string) *models.Proposal {
	t.Helper()

	items := billing.NormalizeItems([]models.LineItem{
		{Description: "Design", Quantity: 10, Rate: 80},
		{Description: "Development", Quantity: 40, Rate: 100},
	})
	totals := billing.Compute(items, models.DiscountPercentage, 10, 19, models.TaxAfterDiscount)

	actor, err := uuid.Parse(createdBy)
	if err != nil {
		t.Fatalf("parse actor id: %v", err)
	}

	return &models.Proposal{
		ClientName:    "Acme GmbH",
		ClientEmail:   "billing@acme.example",
		Items:         items,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		TaxRate:       19,
		TaxMode:       models.TaxAfterDiscount,
		Totals:        totals,
		CreatedBy:     actor,
	}
}

func TestProposalLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewProposalStore(db)
	actorID := testUser(t, db, "proposal-test@shoppress.local")

	p, err := s.Create(testProposal(t, db, actorID))
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM invoices WHERE proposal_id = $1", p.ID)
		db.Exec("DELETE FROM proposals WHERE id = $1", p.ID)
	})

	if p.Status != models.ProposalDraft {
		t.Errorf("new proposal status = %s, want draft", p.Status)
	}
	if !strings.HasPrefix(p.Number, "P-") {
		t.Errorf("proposal number = %q, want P- prefix", p.Number)
	}
	if len(p.ShareToken) != 64 {
		t.Errorf("share token length = %d, want 64", len(p.ShareToken))
	}

	// Draft proposals are invisible through the share link.
	hidden, err := s.FindByShareToken(p.ShareToken)
	if err != nil {
		t.Fatalf("find by token: %v", err)
	}
	if hidden != nil {
		t.Error("draft proposal should not resolve by share token")
	}

	// Skipping straight to accepted is not a legal move.
	if err := s.Transition(p.ID, models.ProposalAccepted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("draft -> accepted: expected ErrInvalidTransition, got %v", err)
	}

	if err := s.Transition(p.ID, models.ProposalSent); err != nil {
		t.Fatalf("send proposal: %v", err)
	}
	sent, err := s.FindByID(p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sent.SentAt == nil {
		t.Error("sent_at not stamped on send")
	}

	// Sent documents are frozen.
	sent.Notes = "edited after send"
	if err := s.Update(sent); !errors.Is(err, ErrNotDraft) {
		t.Errorf("update sent proposal: expected ErrNotDraft, got %v", err)
	}
	if err := s.Delete(p.ID); !errors.Is(err, ErrNotDraft) {
		t.Errorf("delete sent proposal: expected ErrNotDraft, got %v", err)
	}

	// First client view moves sent -> viewed; a second view is a no-op.
	if err := s.MarkViewed(p.ID); err != nil {
		t.Fatalf("mark viewed: %v", err)
	}
	if err := s.MarkViewed(p.ID); err != nil {
		t.Fatalf("second mark viewed: %v", err)
	}
	viewed, _ := s.FindByID(p.ID)
	if viewed.Status != models.ProposalViewed || viewed.ViewedAt == nil {
		t.Errorf("after view: status = %s, viewed_at = %v", viewed.Status, viewed.ViewedAt)
	}

	if err := s.Transition(p.ID, models.ProposalAccepted); err != nil {
		t.Fatalf("accept proposal: %v", err)
	}

	inv, err := s.ConvertToInvoice(p.ID, nil)
	if err != nil {
		t.Fatalf("convert to invoice: %v", err)
	}
	if inv.ProposalID == nil || *inv.ProposalID != p.ID {
		t.Error("invoice not linked back to proposal")
	}
	if !strings.HasPrefix(inv.Number, "INV-") {
		t.Errorf("invoice number = %q, want INV- prefix", inv.Number)
	}
	if inv.Totals != p.Totals {
		t.Errorf("invoice totals = %+v, want %+v", inv.Totals, p.Totals)
	}

	converted, _ := s.FindByID(p.ID)
	if converted.Status != models.ProposalConverted {
		t.Errorf("proposal status after conversion = %s, want converted", converted.Status)
	}

	// A converted proposal cannot be converted again.
	if _, err := s.ConvertToInvoice(p.ID, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double conversion: expected ErrInvalidTransition, got %v", err)
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewInvoiceStore(db)
	actorID := testUser(t, db, "invoice-test@shoppress.local")

	actor, err := uuid.Parse(actorID)
	if err != nil {
		t.Fatalf("parse actor id: %v", err)
	}

	items := billing.NormalizeItems([]models.LineItem{{Description: "Hosting", Quantity: 12, Rate: 25}})
	inv, err := s.Create(&models.Invoice{
		ClientName:  "Acme GmbH",
		ClientEmail: "billing@acme.example",
		Items:       items,
		TaxRate:     19,
		TaxMode:     models.TaxAfterDiscount,
		Totals:      billing.Compute(items, models.DiscountNone, 0, 19, models.TaxAfterDiscount),
		CreatedBy:   actor,
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM invoices WHERE id = $1", inv.ID) })

	// Paid requires sent first.
	if err := s.Transition(inv.ID, models.InvoicePaid); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("draft -> paid: expected ErrInvalidTransition, got %v", err)
	}

	if err := s.Transition(inv.ID, models.InvoiceSent); err != nil {
		t.Fatalf("send invoice: %v", err)
	}
	if err := s.Transition(inv.ID, models.InvoicePaid); err != nil {
		t.Fatalf("pay invoice: %v", err)
	}

	paid, _ := s.FindByID(inv.ID)
	if paid.Status != models.InvoicePaid || paid.PaidAt == nil || paid.SentAt == nil {
		t.Errorf("paid invoice state wrong: status=%s sent_at=%v paid_at=%v",
			paid.Status, paid.SentAt, paid.PaidAt)
	}
}

func TestSEOSettingsRoundTripPreservesPatternOrder(t *testing.T) {
	db := testDB(t)
	s := NewSEOSettingStore(db)
	t.Cleanup(func() { db.Exec("DELETE FROM seo_settings WHERE id = 'main'") })

	settings := models.DefaultSEOSettings()
	settings.Patterns = []models.SEOPatternRule{
		{Pattern: "/shop/*", Config: models.SEOPageConfig{Title: "Shop"}},
		{Pattern: "/shop/sale/*", Config: models.SEOPageConfig{Title: "Sale"}},
		{Pattern: "/blog/*", Config: models.SEOPageConfig{Title: "Blog"}},
	}

	if err := s.Save(settings); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(loaded.Patterns) != 3 {
		t.Fatalf("pattern count = %d, want 3", len(loaded.Patterns))
	}
	want := []string{"/shop/*", "/shop/sale/*", "/blog/*"}
	for i, pattern := range want {
		if loaded.Patterns[i].Pattern != pattern {
			t.Errorf("pattern %d = %q, want %q", i, loaded.Patterns[i].Pattern, pattern)
		}
	}
}
