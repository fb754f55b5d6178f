// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package billing computes line amounts and document totals for invoices and
// proposals, and enforces their status lifecycles. All amounts are recomputed
// server-side; client-supplied amounts and totals are never trusted.
package billing

import (
	"shoppress/internal/models"
)

// LineAmount returns the amount for one line item. It is the only place a
// line amount is ever computed.
func LineAmount(quantity, rate float64) float64 {
	return quantity * rate
}

// Subtotal sums the recomputed amounts of all line items.
func Subtotal(items []models.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += LineAmount(item.Quantity, item.Rate)
	}
	return sum
}

// DiscountAmount converts a discount definition into a money amount.
// Percentage discounts apply to the subtotal; fixed discounts are taken
// as-is and are deliberately not clamped to the subtotal, matching the
// historical behavior where an oversized fixed discount drives the total
// negative.
func DiscountAmount(subtotal float64, discountType models.DiscountType, value float64) float64 {
	switch discountType {
	case models.DiscountPercentage:
		return subtotal * value / 100
	case models.DiscountFixed:
		return value
	default:
		return 0
	}
}

// Compute recomputes every derived money field for a document. The tax base
// depends on the document's TaxMode: after_discount taxes subtotal minus
// discount, on_subtotal taxes the full subtotal. Unknown modes fall back to
// after_discount, the default for new documents.
func Compute(items []models.LineItem, discountType models.DiscountType, discountValue, taxRate float64, mode models.TaxMode) models.Totals {
	subtotal := Subtotal(items)
	discount := DiscountAmount(subtotal, discountType, discountValue)

	taxBase := subtotal - discount
	if mode == models.TaxOnSubtotal {
		taxBase = subtotal
	}
	tax := taxBase * taxRate / 100

	return models.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          subtotal - discount + tax,
	}
}

// NormalizeItems recomputes every line amount in place and returns the
// slice. Called before persisting so stored amounts always equal
// quantity × rate.
func NormalizeItems(items []models.LineItem) []models.LineItem {
	for i := range items {
		items[i].Amount = LineAmount(items[i].Quantity, items[i].Rate)
	}
	return items
}
