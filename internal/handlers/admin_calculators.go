// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"shoppress/internal/models"
)

// CalculatorsList returns all calculators for the back office.
func (a *Admin) CalculatorsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.calculators.List()
	if err != nil {
		slog.Error("list calculators failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list calculators failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type calculatorRequest struct {
	Title             string                  `json:"title"`
	Steps             []models.CalculatorStep `json:"steps"`
	DefaultHourlyRate float64                 `json:"default_hourly_rate"`
	MinHourlyRate     float64                 `json:"min_hourly_rate"`
	MaxHourlyRate     float64                 `json:"max_hourly_rate"`
	Active            bool                    `json:"active"`
}

// validate checks the calculator definition: field IDs must be unique
// across steps, and every field must be coherent for its kind.
func (req *calculatorRequest) validate() string {
	if req.Title == "" {
		return "title is required"
	}
	if req.MinHourlyRate > req.MaxHourlyRate {
		return "min hourly rate exceeds max hourly rate"
	}
	if req.DefaultHourlyRate < req.MinHourlyRate || req.DefaultHourlyRate > req.MaxHourlyRate {
		return "default hourly rate must be within the min/max range"
	}

	seen := make(map[string]bool)
	for _, step := range req.Steps {
		for _, field := range step.Fields {
			if field.ID == "" {
				return "every field needs an id"
			}
			if seen[field.ID] {
				return fmt.Sprintf("duplicate field id %q", field.ID)
			}
			seen[field.ID] = true

			switch field.Kind {
			case models.FieldFeature:
				if field.Hours < 0 {
					return fmt.Sprintf("field %q: hours must not be negative", field.ID)
				}
			case models.FieldConfig:
				if field.Hours < 0 {
					return fmt.Sprintf("field %q: hours must not be negative", field.ID)
				}
				switch field.Type {
				case models.ConfigText, models.ConfigNumber:
				case models.ConfigSelect:
					if len(field.Options) == 0 {
						return fmt.Sprintf("field %q: select fields need options", field.ID)
					}
				default:
					return fmt.Sprintf("field %q: unknown config type %q", field.ID, field.Type)
				}
			default:
				return fmt.Sprintf("field %q: unknown kind %q", field.ID, field.Kind)
			}
		}
	}
	return ""
}

// CalculatorCreate inserts a new calculator definition.
func (a *Admin) CalculatorCreate(w http.ResponseWriter, r *http.Request) {
	var req calculatorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.calculators.Create(&models.Calculator{
		Title:             req.Title,
		Steps:             req.Steps,
		DefaultHourlyRate: req.DefaultHourlyRate,
		MinHourlyRate:     req.MinHourlyRate,
		MaxHourlyRate:     req.MaxHourlyRate,
		Active:            req.Active,
	})
	if err != nil {
		slog.Error("create calculator failed", "error", err)
		respondError(w, http.StatusInternalServerError, "create calculator failed")
		return
	}

	a.audit.Record(actorID(r), "create", "calculator:"+created.ID.String(), created.Title)
	respondJSON(w, http.StatusCreated, created)
}

// CalculatorUpdate replaces a calculator definition. Recorded
// submissions are untouched; they snapshot their own totals.
func (a *Admin) CalculatorUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req calculatorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	current, err := a.calculators.FindByID(id)
	if err != nil {
		slog.Error("find calculator failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update calculator failed")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "calculator not found")
		return
	}

	err = a.calculators.Update(&models.Calculator{
		ID:                id,
		Title:             req.Title,
		Steps:             req.Steps,
		DefaultHourlyRate: req.DefaultHourlyRate,
		MinHourlyRate:     req.MinHourlyRate,
		MaxHourlyRate:     req.MaxHourlyRate,
		Active:            req.Active,
	})
	if err != nil {
		slog.Error("update calculator failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update calculator failed")
		return
	}

	a.audit.Record(actorID(r), "update", "calculator:"+id.String(), req.Title)
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// CalculatorDelete removes a calculator.
func (a *Admin) CalculatorDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.calculators.Delete(id); err != nil {
		slog.Error("delete calculator failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete calculator failed")
		return
	}

	a.audit.Record(actorID(r), "delete", "calculator:"+id.String(), "")
	respondJSON(w, http.StatusNoContent, nil)
}

// CalculatorSubmissions lists the recorded submissions for a calculator,
// newest first.
func (a *Admin) CalculatorSubmissions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	items, err := a.submissions.ListByCalculator(id)
	if err != nil {
		slog.Error("list submissions failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list submissions failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}
