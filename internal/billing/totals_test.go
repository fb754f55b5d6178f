package billing

import (
	"math"
	"testing"

	"shoppress/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		rate     float64
		want     float64
	}{
		{"whole numbers", 3, 10, 30},
		{"fractional rate", 3, 10.5, 31.5},
		{"zero quantity", 0, 100, 0},
		{"zero rate", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineAmount(tt.quantity, tt.rate); !almostEqual(got, tt.want) {
				t.Errorf("LineAmount(%v, %v) = %v, want %v", tt.quantity, tt.rate, got, tt.want)
			}
		})
	}
}

func TestNormalizeItemsRecomputesAmounts(t *testing.T) {
	// Client-supplied amounts are never trusted.
	items := []models.LineItem{
		{Description: "Design", Quantity: 2, Rate: 50, Amount: 9999},
		{Description: "Development", Quantity: 10, Rate: 80, Amount: -1},
	}

	normalized := NormalizeItems(items)

	if !almostEqual(normalized[0].Amount, 100) {
		t.Errorf("item 0 amount: got %v, want 100", normalized[0].Amount)
	}
	if !almostEqual(normalized[1].Amount, 800) {
		t.Errorf("item 1 amount: got %v, want 800", normalized[1].Amount)
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		discountType models.DiscountType
		value        float64
		want         float64
	}{
		{"percentage", 100, models.DiscountPercentage, 10, 10},
		{"fixed", 100, models.DiscountFixed, 25, 25},
		{"fixed exceeding subtotal is not clamped", 100, models.DiscountFixed, 150, 150},
		{"none", 100, models.DiscountNone, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountAmount(tt.subtotal, tt.discountType, tt.value)
			if !almostEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// The two tax modes intentionally produce different totals for the same
// inputs: after_discount is the default formula, on_subtotal preserves the
// totals of invoices created by the legacy flow.
func TestComputeTaxModes(t *testing.T) {
	items := []models.LineItem{{Description: "Work", Quantity: 1, Rate: 100}}

	t.Run("tax after discount", func(t *testing.T) {
		got := Compute(items, models.DiscountPercentage, 10, 8, models.TaxAfterDiscount)
		if !almostEqual(got.Subtotal, 100) {
			t.Errorf("subtotal: got %v, want 100", got.Subtotal)
		}
		if !almostEqual(got.DiscountAmount, 10) {
			t.Errorf("discount: got %v, want 10", got.DiscountAmount)
		}
		if !almostEqual(got.TaxAmount, 7.2) {
			t.Errorf("tax: got %v, want 7.2", got.TaxAmount)
		}
		if !almostEqual(got.Total, 97.2) {
			t.Errorf("total: got %v, want 97.2", got.Total)
		}
	})

	t.Run("tax on full subtotal", func(t *testing.T) {
		got := Compute(items, models.DiscountPercentage, 10, 8, models.TaxOnSubtotal)
		if !almostEqual(got.TaxAmount, 8) {
			t.Errorf("tax: got %v, want 8", got.TaxAmount)
		}
		if !almostEqual(got.Total, 98) {
			t.Errorf("total: got %v, want 98", got.Total)
		}
	})
}

func TestComputeOversizedFixedDiscountGoesNegative(t *testing.T) {
	items := []models.LineItem{{Quantity: 1, Rate: 50}}

	got := Compute(items, models.DiscountFixed, 80, 0, models.TaxAfterDiscount)
	if !almostEqual(got.Total, -30) {
		t.Errorf("total: got %v, want -30", got.Total)
	}
}

func TestComputeMultipleItems(t *testing.T) {
	items := []models.LineItem{
		{Quantity: 2, Rate: 50},
		{Quantity: 3, Rate: 10.5},
	}

	got := Compute(items, models.DiscountNone, 0, 0, models.TaxAfterDiscount)
	if !almostEqual(got.Subtotal, 131.5) {
		t.Errorf("subtotal: got %v, want 131.5", got.Subtotal)
	}
	if !almostEqual(got.Total, 131.5) {
		t.Errorf("total: got %v, want 131.5", got.Total)
	}
}
