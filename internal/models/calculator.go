// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// FieldKind discriminates calculator step fields. Features contribute hours
// to the estimate; config fields collect free-form answers shown in the
// submission summary, and number-type config fields may additionally carry a
// per-unit hour rate so the answered value feeds the estimate too.
type FieldKind string

const (
	FieldFeature FieldKind = "feature"
	FieldConfig  FieldKind = "config"
)

// ConfigFieldType enumerates the input types a config field can render as.
type ConfigFieldType string

const (
	ConfigText   ConfigFieldType = "text"
	ConfigNumber ConfigFieldType = "number"
	ConfigSelect ConfigFieldType = "select"
)

// StepField is a tagged union: Kind selects which of the embedded field sets
// is meaningful. Feature fields use Hours/Mandatory/quantity settings; config
// fields use Type/Options/Required and the numeric bounds. Hours is shared:
// on a number-type config field it is the per-unit contribution of the
// answered value.
type StepField struct {
	ID    string    `json:"id"`
	Kind  FieldKind `json:"kind"`
	Label string    `json:"label"`

	// Feature fields.
	Hours           float64 `json:"hours,omitempty"`
	Mandatory       bool    `json:"mandatory,omitempty"`
	HasQuantity     bool    `json:"has_quantity,omitempty"`
	MinQuantity     int     `json:"min_quantity,omitempty"`
	MaxQuantity     int     `json:"max_quantity,omitempty"`
	DefaultQuantity int     `json:"default_quantity,omitempty"`

	// Config fields.
	Type     ConfigFieldType `json:"type,omitempty"`
	Options  []string        `json:"options,omitempty"`
	Min      *float64        `json:"min,omitempty"`
	Max      *float64        `json:"max,omitempty"`
	Step     *float64        `json:"step,omitempty"`
	Required bool            `json:"required,omitempty"`
}

// CalculatorStep is one page of the multi-step estimate form.
type CalculatorStep struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Fields []StepField `json:"fields"`
}

// Calculator defines a public cost-estimate form. Steps are stored as a
// JSONB document since their shape is authored freely in the admin builder.
type Calculator struct {
	ID                uuid.UUID        `json:"id"`
	Slug              string           `json:"slug"`
	Title             string           `json:"title"`
	Steps             []CalculatorStep `json:"steps"`
	DefaultHourlyRate float64          `json:"default_hourly_rate"`
	MinHourlyRate     float64          `json:"min_hourly_rate"`
	MaxHourlyRate     float64          `json:"max_hourly_rate"`
	Active            bool             `json:"active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// FieldSelection is one answer in a submission: a toggled feature (with
// optional quantity) or a config field value.
type FieldSelection struct {
	FieldID  string `json:"field_id"`
	Selected bool   `json:"selected"`
	Quantity int    `json:"quantity,omitempty"`
	Value    string `json:"value,omitempty"`
}

// CalculatorSubmission is an immutable snapshot of a visitor's selections
// together with the computed totals. It is created once and never mutated,
// so historical estimates survive later edits to the calculator definition.
type CalculatorSubmission struct {
	ID           uuid.UUID        `json:"id"`
	CalculatorID uuid.UUID        `json:"calculator_id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Selections   []FieldSelection `json:"selections"`
	TotalHours   float64          `json:"total_hours"`
	HourlyRate   float64          `json:"hourly_rate"`
	TotalPrice   float64          `json:"total_price"`
	CreatedAt    time.Time        `json:"created_at"`
}
