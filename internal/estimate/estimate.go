// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package estimate computes cost estimates from calculator submissions.
// A submission selects features across the calculator's steps; each selected
// feature contributes its hours (times quantity when quantity-enabled),
// number-type config fields with a per-unit hour rate contribute rate times
// the answered value, and the hour total is priced at an hourly rate clamped
// to the calculator's configured range.
package estimate

import (
	"fmt"
	"strconv"
	"strings"

	"shoppress/internal/models"
)

// Result holds the computed outcome of one submission.
type Result struct {
	TotalHours float64
	HourlyRate float64
	TotalPrice float64
}

// Compute walks the calculator's steps against the visitor's selections.
// Mandatory features are always counted, whether or not the visitor toggled
// them. Quantities are clamped to the feature's min/max bounds; a missing or
// zero quantity falls back to the feature default, then to 1. Number-type
// config fields with a per-unit hour rate add hours for the answered value;
// other config fields only collect answers.
func Compute(calc *models.Calculator, selections []models.FieldSelection, requestedRate float64) Result {
	byField := make(map[string]models.FieldSelection, len(selections))
	for _, sel := range selections {
		byField[sel.FieldID] = sel
	}

	var hours float64
	for _, step := range calc.Steps {
		for _, field := range step.Fields {
			sel, picked := byField[field.ID]
			switch field.Kind {
			case models.FieldFeature:
				if !field.Mandatory && (!picked || !sel.Selected) {
					continue
				}
				if field.HasQuantity {
					hours += field.Hours * float64(quantityFor(field, sel))
				} else {
					hours += field.Hours
				}
			case models.FieldConfig:
				if field.Type == models.ConfigNumber && field.Hours > 0 && picked {
					hours += field.Hours * numericValue(field, sel.Value)
				}
			}
		}
	}

	rate := ClampRate(calc, requestedRate)
	return Result{
		TotalHours: hours,
		HourlyRate: rate,
		TotalPrice: hours * rate,
	}
}

// ClampRate bounds the requested hourly rate to the calculator's range.
// A zero request means the visitor didn't touch the rate slider, so the
// calculator default applies.
func ClampRate(calc *models.Calculator, requested float64) float64 {
	rate := requested
	if rate == 0 {
		rate = calc.DefaultHourlyRate
	}
	if calc.MinHourlyRate > 0 && rate < calc.MinHourlyRate {
		rate = calc.MinHourlyRate
	}
	if calc.MaxHourlyRate > 0 && rate > calc.MaxHourlyRate {
		rate = calc.MaxHourlyRate
	}
	return rate
}

// quantityFor resolves the effective quantity for a quantity-enabled feature.
func quantityFor(field models.StepField, sel models.FieldSelection) int {
	q := sel.Quantity
	if q == 0 {
		q = field.DefaultQuantity
	}
	if q == 0 {
		q = 1
	}
	if field.MinQuantity > 0 && q < field.MinQuantity {
		q = field.MinQuantity
	}
	if field.MaxQuantity > 0 && q > field.MaxQuantity {
		q = field.MaxQuantity
	}
	return q
}

// numericValue parses a number-type config answer and clamps it to the
// field's configured bounds. Empty or unparseable answers contribute zero,
// and the result never goes negative.
func numericValue(field models.StepField, raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	if field.Min != nil && v < *field.Min {
		v = *field.Min
	}
	if field.Max != nil && v > *field.Max {
		v = *field.Max
	}
	if v < 0 {
		return 0
	}
	return v
}

// Summary renders a human-readable recap of a submission for the shared
// contact inbox. The text is denormalized at write time: it names the
// features and answers as they existed when the visitor submitted, so the
// message stays meaningful even after the calculator definition changes.
func Summary(calc *models.Calculator, selections []models.FieldSelection, result Result) string {
	byField := make(map[string]models.FieldSelection, len(selections))
	for _, sel := range selections {
		byField[sel.FieldID] = sel
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Estimate request via %q\n\n", calc.Title)

	for _, step := range calc.Steps {
		var lines []string
		for _, field := range step.Fields {
			sel, picked := byField[field.ID]
			switch field.Kind {
			case models.FieldFeature:
				if !field.Mandatory && (!picked || !sel.Selected) {
					continue
				}
				if field.HasQuantity {
					lines = append(lines, fmt.Sprintf("- %s × %d", field.Label, quantityFor(field, sel)))
				} else {
					lines = append(lines, fmt.Sprintf("- %s", field.Label))
				}
			case models.FieldConfig:
				if picked && sel.Value != "" {
					lines = append(lines, fmt.Sprintf("- %s: %s", field.Label, sel.Value))
				}
			}
		}
		if len(lines) > 0 {
			fmt.Fprintf(&b, "%s:\n%s\n\n", step.Title, strings.Join(lines, "\n"))
		}
	}

	fmt.Fprintf(&b, "Estimated effort: %.1f hours at %.2f/h = %.2f\n", result.TotalHours, result.HourlyRate, result.TotalPrice)
	return b.String()
}
