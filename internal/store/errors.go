// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements typed data access over PostgreSQL. Each store
// owns one table (or one document) and returns models, never raw rows.
package store

import "errors"

var (
	// ErrParentNotFound is returned when a category references a parent
	// that does not exist.
	ErrParentNotFound = errors.New("parent category not found")

	// ErrHasChildren is returned when deleting a category that still has
	// child categories.
	ErrHasChildren = errors.New("category has child categories")

	// ErrHasProducts is returned when deleting a category that still has
	// products assigned.
	ErrHasProducts = errors.New("category has assigned products")

	// ErrNotDraft is returned when mutating a billing document that has
	// left the draft state.
	ErrNotDraft = errors.New("document is not in draft state")

	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateEntry is returned when a uniqueness constraint would be
	// violated, e.g. the same email joining a product wishlist twice.
	ErrDuplicateEntry = errors.New("duplicate entry")
)
