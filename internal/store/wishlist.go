// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"shoppress/internal/models"
)

// WishlistStore manages back-in-stock wishlist signups: one row per
// (email, product) pair.
type WishlistStore struct {
	db *sql.DB
}

// NewWishlistStore returns a new WishlistStore.
func NewWishlistStore(db *sql.DB) *WishlistStore {
	return &WishlistStore{db: db}
}

const wishlistColumns = `id, email, product_id, notified, created_at`

func scanWishlistEntry(scanner interface{ Scan(...any) error }) (*models.WishlistEntry, error) {
	var e models.WishlistEntry
	err := scanner.Scan(&e.ID, &e.Email, &e.ProductID, &e.Notified, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Add records an email's interest in a product. The same email joining
// the same product twice returns ErrDuplicateEntry.
func (s *WishlistStore) Add(email string, productID uuid.UUID) (*models.WishlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	row := s.db.QueryRow(`
		INSERT INTO wishlists (email, product_id)
		VALUES ($1, $2)
		RETURNING `+wishlistColumns,
		email, productID,
	)
	e, err := scanWishlistEntry(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("add wishlist entry: %w", err)
	}
	return e, nil
}

// ListByProduct returns the signups for a product, oldest first, so
// notifications go out in join order.
func (s *WishlistStore) ListByProduct(productID uuid.UUID) ([]models.WishlistEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+wishlistColumns+` FROM wishlists
		WHERE product_id = $1
		ORDER BY created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist entries: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistEntry
	for rows.Next() {
		e, err := scanWishlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist entry: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// PendingByProduct returns un-notified signups for a product. Used when
// the product comes back in stock.
func (s *WishlistStore) PendingByProduct(productID uuid.UUID) ([]models.WishlistEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+wishlistColumns+` FROM wishlists
		WHERE product_id = $1 AND notified = FALSE
		ORDER BY created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list pending wishlist entries: %w", err)
	}
	defer rows.Close()

	var items []models.WishlistEntry
	for rows.Next() {
		e, err := scanWishlistEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist entry: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// MarkNotified flags entries as notified after the restock mail goes out.
func (s *WishlistStore) MarkNotified(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	_, err := s.db.Exec(`
		UPDATE wishlists SET notified = TRUE
		WHERE id IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return fmt.Errorf("mark wishlist notified: %w", err)
	}
	return nil
}
