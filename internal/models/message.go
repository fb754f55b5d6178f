// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageSource tells where an inbox message came from. Calculator
// submissions write a denormalized summary here at submit time, so the
// message text stays stable even if the calculator definition changes later.
type MessageSource string

const (
	MessageSourceContact    MessageSource = "contact"
	MessageSourceCalculator MessageSource = "calculator"
)

// ContactMessage is one entry in the shared admin inbox.
type ContactMessage struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Subject      string        `json:"subject"`
	Body         string        `json:"body"`
	Source       MessageSource `json:"source"`
	SubmissionID *uuid.UUID    `json:"submission_id"` // set for calculator messages
	Read         bool          `json:"read"`
	CreatedAt    time.Time     `json:"created_at"`
}
