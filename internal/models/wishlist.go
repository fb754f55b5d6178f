// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry records a customer's interest in a product, used for
// restock notification exports. One entry per email+product pair.
type WishlistEntry struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	ProductID uuid.UUID `json:"product_id"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}
