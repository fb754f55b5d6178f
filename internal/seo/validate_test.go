package seo

import (
	"strings"
	"testing"

	"shoppress/internal/models"
)

func issueFor(issues []Issue, field string) *Issue {
	for i := range issues {
		if issues[i].Field == field {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateConfigCleanConfig(t *testing.T) {
	cfg := models.SEOPageConfig{
		Title:       "Handmade Leather Goods — ShopPress Store",
		Description: strings.Repeat("Quality leather goods. ", 5),
		Keywords:    []string{"leather", "handmade", "bags"},
	}

	if issues := ValidateConfig(cfg); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestValidateConfigTitleBands(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		wantSeverity Severity
	}{
		{"empty title", "", SeverityWarning},
		{"short title", "Shop", SeverityWarning},
		{"long title", strings.Repeat("x", 65), SeverityWarning},
		{"truncated title", strings.Repeat("x", 80), SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.SEOPageConfig{
				Title:       tt.title,
				Description: strings.Repeat("d", 100),
			}
			issue := issueFor(ValidateConfig(cfg), "title")
			if issue == nil {
				t.Fatal("expected a title issue")
			}
			if issue.Severity != tt.wantSeverity {
				t.Errorf("severity: got %q, want %q", issue.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestValidateConfigDescriptionBands(t *testing.T) {
	tests := []struct {
		name         string
		desc         string
		wantSeverity Severity
	}{
		{"empty description", "", SeverityWarning},
		{"short description", "Too short.", SeverityWarning},
		{"long description", strings.Repeat("x", 170), SeverityWarning},
		{"truncated description", strings.Repeat("x", 250), SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.SEOPageConfig{
				Title:       strings.Repeat("t", 40),
				Description: tt.desc,
			}
			issue := issueFor(ValidateConfig(cfg), "description")
			if issue == nil {
				t.Fatal("expected a description issue")
			}
			if issue.Severity != tt.wantSeverity {
				t.Errorf("severity: got %q, want %q", issue.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestValidateConfigKeywordCount(t *testing.T) {
	cfg := models.SEOPageConfig{
		Title:       strings.Repeat("t", 40),
		Description: strings.Repeat("d", 100),
		Keywords:    make([]string, 15),
	}

	issue := issueFor(ValidateConfig(cfg), "keywords")
	if issue == nil {
		t.Fatal("expected a keywords issue")
	}
	if issue.Severity != SeverityWarning {
		t.Errorf("severity: got %q, want warning", issue.Severity)
	}
}
