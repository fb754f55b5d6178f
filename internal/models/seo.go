// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SEOSettings is the singleton SEO configuration document for the whole
// storefront. Exact routes in Pages take priority over Patterns, which take
// priority over Global. Patterns is an ordered list so precedence between
// overlapping wildcard rules is deterministic.
type SEOSettings struct {
	Global    SEOGlobalConfig              `json:"global"`
	Pages     map[string]SEOPageConfig     `json:"pages"`
	Patterns  []SEOPatternRule             `json:"patterns"`
	Templates map[string]SEOTemplateConfig `json:"templates"`
}

// SEOGlobalConfig holds the site-wide defaults every resolution falls back to.
type SEOGlobalConfig struct {
	SiteTitle   string   `json:"site_title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	OGImage     string   `json:"og_image,omitempty"`
	TwitterCard string   `json:"twitter_card"`
}

// SEOPageConfig overrides the global defaults for a single route or a
// wildcard pattern. Empty fields fall back to the global value.
type SEOPageConfig struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	OGImage     string   `json:"og_image,omitempty"`
	NoIndex     bool     `json:"noindex,omitempty"`
}

// SEOPatternRule binds a wildcard route ("/shop/*") to a page config.
type SEOPatternRule struct {
	Pattern string        `json:"pattern"`
	Config  SEOPageConfig `json:"config"`
}

// Template types for dynamically generated pages.
const (
	SEOTemplateProduct  = "product"
	SEOTemplateCategory = "category"
	SEOTemplateVendor   = "vendor"
	SEOTemplateContent  = "content"
)

// SEOTemplateConfig describes how to build metadata for generated pages.
// Templates contain {variable} placeholders substituted at resolution time.
type SEOTemplateConfig struct {
	TitleTemplate       string   `json:"title_template"`
	DescriptionTemplate string   `json:"description_template,omitempty"`
	Keywords            []string `json:"keywords"`
}

// ResolvedSEO is the effective metadata for one route after merging.
type ResolvedSEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	OGImage     string   `json:"og_image,omitempty"`
	TwitterCard string   `json:"twitter_card,omitempty"`
	NoIndex     bool     `json:"noindex,omitempty"`
}

// DefaultSEOSettings returns the in-memory defaults used before the settings
// document has ever been saved.
func DefaultSEOSettings() *SEOSettings {
	return &SEOSettings{
		Global: SEOGlobalConfig{
			TwitterCard: "summary_large_image",
		},
		Pages:     map[string]SEOPageConfig{},
		Templates: map[string]SEOTemplateConfig{},
	}
}
