package billing

import (
	"testing"

	"shoppress/internal/models"
)

func TestCanTransitionProposal(t *testing.T) {
	tests := []struct {
		from models.ProposalStatus
		to   models.ProposalStatus
		want bool
	}{
		{models.ProposalDraft, models.ProposalSent, true},
		{models.ProposalSent, models.ProposalViewed, true},
		{models.ProposalSent, models.ProposalAccepted, true}, // response without a viewed hook
		{models.ProposalViewed, models.ProposalAccepted, true},
		{models.ProposalViewed, models.ProposalRejected, true},
		{models.ProposalViewed, models.ProposalExpired, true},
		{models.ProposalAccepted, models.ProposalConverted, true},

		// One-way: no going back.
		{models.ProposalSent, models.ProposalDraft, false},
		{models.ProposalViewed, models.ProposalSent, false},
		{models.ProposalAccepted, models.ProposalRejected, false},
		{models.ProposalRejected, models.ProposalConverted, false},
		{models.ProposalConverted, models.ProposalDraft, false},
		{models.ProposalDraft, models.ProposalAccepted, false}, // must be sent first
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := CanTransitionProposal(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionProposal(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanTransitionInvoice(t *testing.T) {
	tests := []struct {
		from models.InvoiceStatus
		to   models.InvoiceStatus
		want bool
	}{
		{models.InvoiceDraft, models.InvoiceSent, true},
		{models.InvoiceDraft, models.InvoiceVoid, true},
		{models.InvoiceSent, models.InvoicePaid, true},
		{models.InvoiceSent, models.InvoiceVoid, true},
		{models.InvoicePaid, models.InvoiceVoid, false},
		{models.InvoiceSent, models.InvoiceDraft, false},
		{models.InvoiceDraft, models.InvoicePaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := CanTransitionInvoice(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionInvoice(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := []models.LineItem{{Description: "Work", Quantity: 1, Rate: 100}}

	tests := []struct {
		name         string
		clientName   string
		clientEmail  string
		items        []models.LineItem
		wantProblems int
	}{
		{"valid document", "Acme", "billing@acme.test", valid, 0},
		{"missing name", "", "billing@acme.test", valid, 1},
		{"missing email", "Acme", "", valid, 1},
		{"no items", "Acme", "billing@acme.test", nil, 1},
		{"zero quantity", "Acme", "billing@acme.test", []models.LineItem{{Quantity: 0, Rate: 10}}, 1},
		{"negative rate", "Acme", "billing@acme.test", []models.LineItem{{Quantity: 1, Rate: -5}}, 1},
		{"everything wrong", "", "", nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := ValidateDocument(tt.clientName, tt.clientEmail, tt.items)
			if len(problems) != tt.wantProblems {
				t.Errorf("got %d problems %v, want %d", len(problems), problems, tt.wantProblems)
			}
		})
	}
}
