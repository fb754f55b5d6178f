// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo resolves the effective SEO metadata for storefront routes.
// Resolution is pure and deterministic: exact route entries override wildcard
// pattern rules, which override the global defaults. Template-driven pages
// (products, categories, vendors, posts) get their metadata from {variable}
// templates substituted at request time.
package seo

import (
	"regexp"
	"sort"
	"strings"

	"shoppress/internal/models"
)

// Resolve returns the effective metadata for a route. Precedence is exact
// page match, then the first matching pattern rule, then global defaults.
// Pattern rules are evaluated most-specific-first regardless of the order
// they were stored in, so overlapping wildcards resolve deterministically.
func Resolve(settings *models.SEOSettings, route string) models.ResolvedSEO {
	base := globalResolved(settings)

	if cfg, ok := settings.Pages[route]; ok {
		return mergeOverride(base, cfg)
	}

	for _, rule := range orderedPatterns(settings.Patterns) {
		if matchPattern(rule.Pattern, route) {
			return mergeOverride(base, rule.Config)
		}
	}

	return base
}

// globalResolved builds the fallback metadata from the global config alone.
func globalResolved(settings *models.SEOSettings) models.ResolvedSEO {
	g := settings.Global
	return models.ResolvedSEO{
		Title:       g.SiteTitle,
		Description: g.Description,
		Keywords:    g.Keywords,
		OGImage:     g.OGImage,
		TwitterCard: g.TwitterCard,
	}
}

// mergeOverride applies a page config on top of the resolved base. A field
// that is present but empty in the override still falls back to the base.
func mergeOverride(base models.ResolvedSEO, override models.SEOPageConfig) models.ResolvedSEO {
	out := base
	if override.Title != "" {
		out.Title = override.Title
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if len(override.Keywords) > 0 {
		out.Keywords = override.Keywords
	}
	if override.OGImage != "" {
		out.OGImage = override.OGImage
	}
	out.NoIndex = override.NoIndex
	return out
}

// orderedPatterns returns the rules sorted most-specific-first: longest
// literal prefix before the first wildcard, then fewest wildcards, then
// lexicographic for a stable total order.
func orderedPatterns(rules []models.SEOPatternRule) []models.SEOPatternRule {
	ordered := make([]models.SEOPatternRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Pattern, ordered[j].Pattern
		li, lj := literalPrefixLen(pi), literalPrefixLen(pj)
		if li != lj {
			return li > lj
		}
		wi, wj := strings.Count(pi, "*"), strings.Count(pj, "*")
		if wi != wj {
			return wi < wj
		}
		return pi < pj
	})
	return ordered
}

// literalPrefixLen is the length of the pattern before its first wildcard.
func literalPrefixLen(pattern string) int {
	if i := strings.IndexByte(pattern, '*'); i >= 0 {
		return i
	}
	return len(pattern)
}

// matchPattern tests a full route against a wildcard pattern. Every "*" is a
// greedy wildcard; all other characters (including "/") match literally, and
// the pattern is anchored to the whole route.
func matchPattern(pattern, route string) bool {
	var b strings.Builder
	b.WriteString("^")
	for _, part := range strings.Split(pattern, "*") {
		if b.Len() > 1 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(route)
}
