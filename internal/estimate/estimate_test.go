package estimate

import (
	"math"
	"strings"
	"testing"

	"shoppress/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func fptr(v float64) *float64 { return &v }

func testCalculator() *models.Calculator {
	return &models.Calculator{
		Title:             "Website Estimate",
		Slug:              "website",
		DefaultHourlyRate: 50,
		MinHourlyRate:     40,
		MaxHourlyRate:     90,
		Steps: []models.CalculatorStep{
			{
				ID:    "basics",
				Title: "Basics",
				Fields: []models.StepField{
					{ID: "setup", Kind: models.FieldFeature, Label: "Project setup", Hours: 4, Mandatory: true},
					{ID: "design", Kind: models.FieldFeature, Label: "Custom design", Hours: 10},
					{ID: "pages", Kind: models.FieldFeature, Label: "Extra pages", Hours: 2, HasQuantity: true, MinQuantity: 1, MaxQuantity: 20, DefaultQuantity: 1},
				},
			},
			{
				ID:    "details",
				Title: "Details",
				Fields: []models.StepField{
					{ID: "deadline", Kind: models.FieldConfig, Label: "Deadline", Type: models.ConfigText},
					{ID: "languages", Kind: models.FieldConfig, Label: "Languages", Type: models.ConfigNumber, Hours: 3, Min: fptr(1), Max: fptr(5)},
					{ID: "cms", Kind: models.FieldFeature, Label: "CMS integration", Hours: 8},
				},
			},
		},
	}
}

func TestComputeMandatoryFeatureAlwaysCounted(t *testing.T) {
	// No selections at all: only the mandatory setup feature contributes.
	result := Compute(testCalculator(), nil, 0)

	if !almostEqual(result.TotalHours, 4) {
		t.Errorf("hours: got %v, want 4", result.TotalHours)
	}
	if !almostEqual(result.HourlyRate, 50) {
		t.Errorf("rate: got %v, want default 50", result.HourlyRate)
	}
	if !almostEqual(result.TotalPrice, 200) {
		t.Errorf("price: got %v, want 200", result.TotalPrice)
	}
}

func TestComputeSelectedFeatures(t *testing.T) {
	selections := []models.FieldSelection{
		{FieldID: "design", Selected: true},
		{FieldID: "cms", Selected: true},
	}

	result := Compute(testCalculator(), selections, 0)

	// 4 (mandatory) + 10 (design) + 8 (cms).
	if !almostEqual(result.TotalHours, 22) {
		t.Errorf("hours: got %v, want 22", result.TotalHours)
	}
}

func TestComputeQuantityMultipliesHours(t *testing.T) {
	selections := []models.FieldSelection{
		{FieldID: "pages", Selected: true, Quantity: 3},
	}

	result := Compute(testCalculator(), selections, 0)

	// 4 (mandatory) + 2×3 (pages).
	if !almostEqual(result.TotalHours, 10) {
		t.Errorf("hours: got %v, want 10", result.TotalHours)
	}
}

func TestComputeQuantityClamping(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantHours float64
	}{
		{"below minimum clamps up", -5, 4 + 2*1},
		{"zero falls back to default", 0, 4 + 2*1},
		{"above maximum clamps down", 100, 4 + 2*20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selections := []models.FieldSelection{
				{FieldID: "pages", Selected: true, Quantity: tt.quantity},
			}
			result := Compute(testCalculator(), selections, 0)
			if !almostEqual(result.TotalHours, tt.wantHours) {
				t.Errorf("hours: got %v, want %v", result.TotalHours, tt.wantHours)
			}
		})
	}
}

func TestComputeNumericConfigContributes(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantHours float64
	}{
		{"value multiplies per-unit hours", "2", 4 + 3*2},
		{"above maximum clamps down", "50", 4 + 3*5},
		{"below minimum clamps up", "0", 4 + 3*1},
		{"unparseable contributes nothing", "soon", 4},
		{"empty contributes nothing", "", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selections := []models.FieldSelection{
				{FieldID: "languages", Value: tt.value},
			}
			result := Compute(testCalculator(), selections, 0)
			if !almostEqual(result.TotalHours, tt.wantHours) {
				t.Errorf("hours: got %v, want %v", result.TotalHours, tt.wantHours)
			}
		})
	}
}

func TestComputeTextConfigNeverContributes(t *testing.T) {
	calc := testCalculator()
	// A per-unit rate on a text field is meaningless and must be ignored.
	calc.Steps[1].Fields[0].Hours = 7

	result := Compute(calc, []models.FieldSelection{{FieldID: "deadline", Value: "3"}}, 0)
	if !almostEqual(result.TotalHours, 4) {
		t.Errorf("hours: got %v, want 4 (mandatory only)", result.TotalHours)
	}
}

func TestComputeDeselectedFeatureIgnored(t *testing.T) {
	selections := []models.FieldSelection{
		{FieldID: "design", Selected: false},
	}

	result := Compute(testCalculator(), selections, 0)
	if !almostEqual(result.TotalHours, 4) {
		t.Errorf("hours: got %v, want 4 (mandatory only)", result.TotalHours)
	}
}

func TestClampRate(t *testing.T) {
	calc := testCalculator()

	tests := []struct {
		name      string
		requested float64
		want      float64
	}{
		{"zero uses default", 0, 50},
		{"within range", 60, 60},
		{"below minimum", 10, 40},
		{"above maximum", 500, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampRate(calc, tt.requested); !almostEqual(got, tt.want) {
				t.Errorf("ClampRate(%v) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestSummaryNamesSelectionsAndTotals(t *testing.T) {
	calc := testCalculator()
	selections := []models.FieldSelection{
		{FieldID: "design", Selected: true},
		{FieldID: "pages", Selected: true, Quantity: 3},
		{FieldID: "deadline", Value: "End of March"},
	}

	result := Compute(calc, selections, 60)
	summary := Summary(calc, selections, result)

	for _, want := range []string{
		"Website Estimate",
		"Project setup",   // mandatory, listed even though not toggled
		"Custom design",
		"Extra pages × 3",
		"Deadline: End of March",
		"20.0 hours at 60.00/h = 1200.00",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	if strings.Contains(summary, "CMS integration") {
		t.Errorf("summary lists a feature that was not selected:\n%s", summary)
	}
}

// Summaries are denormalized at write time: editing the calculator later
// must not change what an already-built summary said.
func TestSummaryStableUnderCalculatorEdits(t *testing.T) {
	calc := testCalculator()
	selections := []models.FieldSelection{{FieldID: "design", Selected: true}}
	result := Compute(calc, selections, 0)

	before := Summary(calc, selections, result)

	calc.Steps[0].Fields[1].Label = "Renamed design"
	after := Summary(calc, selections, result)

	if before == after {
		t.Error("expected regenerated summary to differ after the edit; the stored copy is what stays stable")
	}
	if !strings.Contains(before, "Custom design") {
		t.Errorf("original summary lost the label it was built with:\n%s", before)
	}
}
