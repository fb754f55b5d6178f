// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"fmt"
	"unicode/utf8"

	"shoppress/internal/models"
)

// Severity grades a validation finding. Findings never block a save; the
// admin UI shows them as inline feedback.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one validation finding for a single config field.
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Length and count bands for search-result display.
const (
	titleMinLen    = 30
	titleMaxLen    = 60
	titleHardMax   = 70
	descMinLen     = 50
	descMaxLen     = 160
	descHardMax    = 200
	keywordSoftMax = 10
)

// ValidateConfig checks a page config against fixed display thresholds and
// returns every finding. An empty slice means the config is clean.
func ValidateConfig(cfg models.SEOPageConfig) []Issue {
	var issues []Issue

	titleLen := utf8.RuneCountInString(cfg.Title)
	switch {
	case titleLen == 0:
		issues = append(issues, Issue{"title", "Title is empty; the global default will be used.", SeverityWarning})
	case titleLen > titleHardMax:
		issues = append(issues, Issue{"title", fmt.Sprintf("Title is %d characters; search engines truncate past %d.", titleLen, titleHardMax), SeverityError})
	case titleLen > titleMaxLen:
		issues = append(issues, Issue{"title", fmt.Sprintf("Title is %d characters; keep it under %d.", titleLen, titleMaxLen), SeverityWarning})
	case titleLen < titleMinLen:
		issues = append(issues, Issue{"title", fmt.Sprintf("Title is %d characters; %d or more reads better in results.", titleLen, titleMinLen), SeverityWarning})
	}

	descLen := utf8.RuneCountInString(cfg.Description)
	switch {
	case descLen == 0:
		issues = append(issues, Issue{"description", "Description is empty; the global default will be used.", SeverityWarning})
	case descLen > descHardMax:
		issues = append(issues, Issue{"description", fmt.Sprintf("Description is %d characters; search engines truncate past %d.", descLen, descHardMax), SeverityError})
	case descLen > descMaxLen:
		issues = append(issues, Issue{"description", fmt.Sprintf("Description is %d characters; keep it under %d.", descLen, descMaxLen), SeverityWarning})
	case descLen < descMinLen:
		issues = append(issues, Issue{"description", fmt.Sprintf("Description is %d characters; %d or more reads better in results.", descLen, descMinLen), SeverityWarning})
	}

	if len(cfg.Keywords) > keywordSoftMax {
		issues = append(issues, Issue{"keywords", fmt.Sprintf("%d keywords; more than %d dilutes relevance.", len(cfg.Keywords), keywordSoftMax), SeverityWarning})
	}

	return issues
}
