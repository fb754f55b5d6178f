// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package billing

import (
	"fmt"

	"shoppress/internal/models"
)

// proposalTransitions lists the legal one-way moves of the proposal
// lifecycle: DRAFT→SENT→VIEWED→{ACCEPTED|REJECTED|EXPIRED}→CONVERTED.
// Accept/reject/expire are also legal straight from SENT, since a recipient
// may respond through a channel that never triggered the viewed hook.
var proposalTransitions = map[models.ProposalStatus][]models.ProposalStatus{
	models.ProposalDraft:    {models.ProposalSent},
	models.ProposalSent:     {models.ProposalViewed, models.ProposalAccepted, models.ProposalRejected, models.ProposalExpired},
	models.ProposalViewed:   {models.ProposalAccepted, models.ProposalRejected, models.ProposalExpired},
	models.ProposalAccepted: {models.ProposalConverted},
}

// invoiceTransitions lists the legal invoice moves.
var invoiceTransitions = map[models.InvoiceStatus][]models.InvoiceStatus{
	models.InvoiceDraft: {models.InvoiceSent, models.InvoiceVoid},
	models.InvoiceSent:  {models.InvoicePaid, models.InvoiceVoid},
}

// CanTransitionProposal reports whether a proposal may move between the two
// statuses.
func CanTransitionProposal(from, to models.ProposalStatus) bool {
	for _, next := range proposalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionInvoice reports whether an invoice may move between the two
// statuses.
func CanTransitionInvoice(from, to models.InvoiceStatus) bool {
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateDocument checks the fields every billing document must carry
// before any write happens. Returns a human-readable message per failed
// field, empty when the document is acceptable.
func ValidateDocument(clientName, clientEmail string, items []models.LineItem) []string {
	var problems []string
	if clientName == "" {
		problems = append(problems, "Client name is required.")
	}
	if clientEmail == "" {
		problems = append(problems, "Client email is required.")
	}
	if len(items) == 0 {
		problems = append(problems, "At least one line item is required.")
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("Line %d: quantity must be positive.", i+1))
		}
		if item.Rate < 0 {
			problems = append(problems, fmt.Sprintf("Line %d: rate cannot be negative.", i+1))
		}
	}
	return problems
}
