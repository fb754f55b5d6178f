// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"regexp"
	"strings"

	"shoppress/internal/models"
)

// tokenRe matches {name}-style placeholders in metadata templates.
var tokenRe = regexp.MustCompile(`\{[^{}]*\}`)

// ResolveTemplate builds metadata for a dynamically generated page (product,
// category, vendor, post) from the template config for the given type. When
// no template is configured for the type, the global defaults are returned
// unchanged.
func ResolveTemplate(settings *models.SEOSettings, templateType string, vars map[string]string) models.ResolvedSEO {
	out := globalResolved(settings)

	tmpl, ok := settings.Templates[templateType]
	if !ok {
		return out
	}

	if title := ApplyTemplateVariables(tmpl.TitleTemplate, vars); title != "" {
		out.Title = title
	}
	if tmpl.DescriptionTemplate != "" {
		if desc := ApplyTemplateVariables(tmpl.DescriptionTemplate, vars); desc != "" {
			out.Description = desc
		}
	}
	if len(tmpl.Keywords) > 0 {
		out.Keywords = tmpl.Keywords
	}
	return out
}

// ApplyTemplateVariables substitutes {key} tokens with values from vars.
// Tokens with no matching key are removed entirely, and whitespace is
// collapsed afterwards so dropped tokens don't leave double spaces behind:
// ApplyTemplateVariables("{a} and {b}", {a: "foo"}) == "foo and".
func ApplyTemplateVariables(template string, vars map[string]string) string {
	result := tokenRe.ReplaceAllStringFunc(template, func(token string) string {
		key := token[1 : len(token)-1]
		return vars[key]
	})
	return strings.Join(strings.Fields(result), " ")
}
