// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"shoppress/internal/models"
	"shoppress/internal/seo"
)

// SEOSettingsGet returns the full SEO configuration document.
func (a *Admin) SEOSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := a.seoSettings.Load()
	if err != nil {
		slog.Error("load seo settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load seo settings failed")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// seoSaveResponse bundles the saved document with per-field quality
// issues. Warnings don't block the save; the admin UI shows them inline.
type seoSaveResponse struct {
	Settings *models.SEOSettings   `json:"settings"`
	Issues   map[string][]seo.Issue `json:"issues,omitempty"`
}

// SEOSettingsSave replaces the whole configuration document. Quality
// findings never block the save; they come back with the saved document
// for the UI to surface.
func (a *Admin) SEOSettingsSave(w http.ResponseWriter, r *http.Request) {
	var settings models.SEOSettings
	if !decodeJSON(w, r, &settings) {
		return
	}

	issues := collectSEOIssues(&settings)

	if err := a.seoSettings.Save(&settings); err != nil {
		slog.Error("save seo settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "save seo settings failed")
		return
	}

	a.audit.Record(actorID(r), "update", "seo_settings", "")
	a.seoCache.Invalidate(r.Context())
	a.pageCache.InvalidateAll(r.Context())

	respondJSON(w, http.StatusOK, seoSaveResponse{Settings: &settings, Issues: issues})
}

// SEOSettingsValidate runs the quality checks without persisting,
// so the admin UI can preview issues while editing.
func (a *Admin) SEOSettingsValidate(w http.ResponseWriter, r *http.Request) {
	var settings models.SEOSettings
	if !decodeJSON(w, r, &settings) {
		return
	}
	respondJSON(w, http.StatusOK, seoSaveResponse{Issues: collectSEOIssues(&settings)})
}

// seoPreviewRequest asks how a route would resolve under a candidate
// configuration.
type seoPreviewRequest struct {
	Settings models.SEOSettings `json:"settings"`
	Route    string             `json:"route"`
}

// SEOPreview resolves a route against a candidate document, letting the
// admin check precedence (exact page beats pattern beats global) before
// saving.
func (a *Admin) SEOPreview(w http.ResponseWriter, r *http.Request) {
	var req seoPreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Route == "" {
		respondError(w, http.StatusBadRequest, "route is required")
		return
	}
	respondJSON(w, http.StatusOK, seo.Resolve(&req.Settings, req.Route))
}

// collectSEOIssues validates the global config and every page and
// pattern override, keyed by where the issue lives.
func collectSEOIssues(settings *models.SEOSettings) map[string][]seo.Issue {
	issues := make(map[string][]seo.Issue)

	global := seo.ValidateConfig(models.SEOPageConfig{
		Title:       settings.Global.SiteTitle,
		Description: settings.Global.Description,
		Keywords:    settings.Global.Keywords,
	})
	if len(global) > 0 {
		issues["global"] = global
	}

	for route, cfg := range settings.Pages {
		if found := seo.ValidateConfig(cfg); len(found) > 0 {
			issues["page:"+route] = found
		}
	}
	for _, rule := range settings.Patterns {
		if found := seo.ValidateConfig(rule.Config); len(found) > 0 {
			issues["pattern:"+rule.Pattern] = found
		}
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}
