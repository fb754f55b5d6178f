// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shoppress/internal/models"
	"shoppress/internal/slug"
)

// ProductStore manages products in the database. Category product counts
// are denormalized; every write that changes a product's category carries
// the counter adjustment in the same transaction.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, description, price, category_id, image, active, in_stock, vendor, created_at, updated_at`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.CategoryID, &p.Image, &p.Active, &p.InStock, &p.Vendor,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all products, newest first. Used by the back office.
func (s *ProductStore) List() ([]models.Product, error) {
	rows, err := s.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListActive returns active products, newest first. Used by the storefront.
func (s *ProductStore) ListActive() ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT ` + productColumns + ` FROM products
		WHERE active = TRUE
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCategories returns active products assigned to any of the given
// categories. Storefront category pages pass a whole subtree here so a
// parent category lists its descendants' products too.
func (s *ProductStore) ListByCategories(categoryIDs []uuid.UUID) ([]models.Product, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(categoryIDs))
	args := make([]any, len(categoryIDs))
	for i, id := range categoryIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE active = TRUE AND category_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list products by categories: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a product by slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(productSlug string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, productSlug)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new product and, if it is active and assigned to a
// category, bumps the counts of that category and its ancestors in the
// same transaction. Counters track active products only, matching what
// the storefront listing shows.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	if p.CategoryID != nil {
		var exists bool
		err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, *p.CategoryID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if !exists {
			return nil, ErrParentNotFound
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		INSERT INTO products (name, slug, description, price, category_id, image, active, in_stock, vendor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		p.Name, slug.Generate(p.Name), p.Description, p.Price,
		p.CategoryID, p.Image, p.Active, p.InStock, p.Vendor,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if result.Active && result.CategoryID != nil {
		if err := adjustProductCount(tx, *result.CategoryID, 1); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update modifies a product. When the category assignment or the active
// flag changes, the old chain is decremented and the new one
// incremented, all in one transaction with the row update. Deactivating
// a product removes it from its chain's counts; reactivating adds it
// back.
func (s *ProductStore) Update(p *models.Product) error {
	current, err := s.FindByID(p.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE products SET
			name = $1, description = $2, price = $3, category_id = $4,
			image = $5, active = $6, in_stock = $7, vendor = $8, updated_at = $9
		WHERE id = $10`,
		p.Name, p.Description, p.Price, p.CategoryID,
		p.Image, p.Active, p.InStock, p.Vendor, time.Now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	wasCounted := current.Active && current.CategoryID != nil
	nowCounted := p.Active && p.CategoryID != nil
	if wasCounted != nowCounted || !ptrEqual(current.CategoryID, p.CategoryID) {
		if wasCounted {
			if err := adjustProductCount(tx, *current.CategoryID, -1); err != nil {
				return err
			}
		}
		if nowCounted {
			if err := adjustProductCount(tx, *p.CategoryID, 1); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Delete removes a product, lowering its category chain's counts in the
// same transaction when the product was active.
func (s *ProductStore) Delete(id uuid.UUID) error {
	current, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if current.Active && current.CategoryID != nil {
		if err := adjustProductCount(tx, *current.CategoryID, -1); err != nil {
			return err
		}
	}

	return tx.Commit()
}
