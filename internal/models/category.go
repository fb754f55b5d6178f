// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a hierarchical product category. Subcategory slugs are
// prefixed with their parent's slug ("clothing/shirts"), and ProductCount is
// denormalized: it counts active products assigned directly to the category
// plus every product counted by its descendants.
type Category struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Image        *string    `json:"image,omitempty"`
	ParentID     *uuid.UUID `json:"parent_id"`
	ProductCount int        `json:"product_count"`
	SortOrder    int        `json:"sort_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children []Category `json:"children,omitempty"`
	Depth    int        `json:"depth"`
}
