// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shoppress/internal/models"
	"shoppress/internal/slug"
)

// CategoryStore manages the category hierarchy in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, image, parent_id, product_count, sort_order, created_at, updated_at`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Image,
		&c.ParentID, &c.ProductCount, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by sort_order, then name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Tree returns categories as a nested tree structure.
func (s *CategoryStore) Tree() ([]models.Category, error) {
	flat, err := s.List()
	if err != nil {
		return nil, err
	}
	return buildTree(flat, nil, 0), nil
}

// buildTree recursively builds a tree from a flat list.
func buildTree(flat []models.Category, parentID *uuid.UUID, depth int) []models.Category {
	var result []models.Category
	for _, c := range flat {
		if ptrEqual(c.ParentID, parentID) {
			c.Depth = depth
			c.Children = buildTree(flat, &c.ID, depth+1)
			result = append(result, c)
		}
	}
	return result
}

// ptrEqual compares two *uuid.UUID for equality (both nil or same value).
func ptrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// FlatTree returns categories as a flat list ordered for display,
// with Depth set for indentation. Useful for <select> dropdowns.
func (s *CategoryStore) FlatTree() ([]models.Category, error) {
	tree, err := s.Tree()
	if err != nil {
		return nil, err
	}
	var result []models.Category
	flattenTree(tree, &result)
	return result, nil
}

// flattenTree walks a category tree depth-first, appending to result.
func flattenTree(cats []models.Category, result *[]models.Category) {
	for _, c := range cats {
		*result = append(*result, c)
		if len(c.Children) > 0 {
			flattenTree(c.Children, result)
		}
	}
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its full hierarchical slug.
// Returns nil if not found.
func (s *CategoryStore) FindBySlug(categorySlug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, categorySlug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category. The slug is derived from the name; a
// child category's slug is prefixed with its parent's full slug, so the
// slug encodes the path from the root. Returns ErrParentNotFound if the
// referenced parent does not exist.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	full := slug.Generate(c.Name)
	if c.ParentID != nil {
		parent, err := s.FindByID(*c.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		full = slug.Join(parent.Slug, full)
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, image, parent_id, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Name, full, c.Image, c.ParentID, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies a category's name, image, and sort order. The slug is
// regenerated from the new name under the current parent, so descendant
// slugs are rewritten to keep encoding the path.
func (s *CategoryStore) Update(c *models.Category) error {
	current, err := s.FindByID(c.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}

	full := slug.Generate(c.Name)
	if current.ParentID != nil {
		parent, err := s.FindByID(*current.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrParentNotFound
		}
		full = slug.Join(parent.Slug, full)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE categories SET name = $1, slug = $2, image = $3, sort_order = $4, updated_at = $5
		WHERE id = $6`,
		c.Name, full, c.Image, c.SortOrder, time.Now(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	// Rewrite descendant slugs when the prefix changed.
	if full != current.Slug {
		_, err = tx.Exec(`
			WITH RECURSIVE descendants AS (
				SELECT id, slug FROM categories WHERE parent_id = $1
				UNION ALL
				SELECT c.id, c.slug FROM categories c
				JOIN descendants d ON c.parent_id = d.id
			)
			UPDATE categories SET
				slug = $2 || substring(slug FROM length($3) + 1),
				updated_at = NOW()
			WHERE id IN (SELECT id FROM descendants)`,
			c.ID, full, current.Slug,
		)
		if err != nil {
			return fmt.Errorf("rewrite descendant slugs: %w", err)
		}
	}

	return tx.Commit()
}

// Delete removes a category. Returns ErrHasChildren if child categories
// still reference it, and ErrHasProducts if products are still assigned.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	var children int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE parent_id = $1`, id).Scan(&children)
	if err != nil {
		return fmt.Errorf("count children: %w", err)
	}
	if children > 0 {
		return ErrHasChildren
	}

	var products int
	err = s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&products)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if products > 0 {
		return ErrHasProducts
	}

	_, err = s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// AllDescendantIDs returns the IDs of the category and every category
// below it. Storefront listings use this to scope products to a subtree.
func (s *CategoryStore) AllDescendantIDs(id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE id = $1
			UNION
			SELECT c.id FROM categories c
			JOIN subtree s ON c.parent_id = s.id
		)
		SELECT id FROM subtree`, id)
	if err != nil {
		return nil, fmt.Errorf("descendant ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var i uuid.UUID
		if err := rows.Scan(&i); err != nil {
			return nil, fmt.Errorf("scan descendant id: %w", err)
		}
		ids = append(ids, i)
	}
	return ids, rows.Err()
}

// Breadcrumbs returns the path from the root category down to the given
// one, inclusive.
func (s *CategoryStore) Breadcrumbs(id uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.Query(`
		WITH RECURSIVE chain AS (
			SELECT `+categoryColumns+`, 0 AS depth FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, c.name, c.slug, c.image, c.parent_id, c.product_count,
			       c.sort_order, c.created_at, c.updated_at, chain.depth + 1
			FROM categories c
			JOIN chain ON c.id = chain.parent_id
		)
		SELECT `+categoryColumns+` FROM chain ORDER BY depth DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("breadcrumbs: %w", err)
	}
	defer rows.Close()

	var crumbs []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan breadcrumb: %w", err)
		}
		crumbs = append(crumbs, *c)
	}
	return crumbs, rows.Err()
}

// IncrementProductCount bumps the denormalized product counter on the
// category and every ancestor, in a single statement.
func (s *CategoryStore) IncrementProductCount(id uuid.UUID) error {
	return adjustProductCount(s.db, id, 1)
}

// DecrementProductCount lowers the counter on the category and every
// ancestor, flooring at zero so a drifted counter never goes negative.
func (s *CategoryStore) DecrementProductCount(id uuid.UUID) error {
	return adjustProductCount(s.db, id, -1)
}

// adjustProductCount applies delta to the product_count of the category
// and its whole ancestor chain atomically. Runs against a *sql.DB or an
// enclosing *sql.Tx so product writes can carry the count change in the
// same transaction.
func adjustProductCount(q execer, id uuid.UUID, delta int) error {
	_, err := q.Exec(`
		WITH RECURSIVE chain AS (
			SELECT id, parent_id FROM categories WHERE id = $1
			UNION
			SELECT c.id, c.parent_id FROM categories c
			JOIN chain ch ON c.id = ch.parent_id
		)
		UPDATE categories SET
			product_count = GREATEST(product_count + $2, 0),
			updated_at = NOW()
		WHERE id IN (SELECT id FROM chain)`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust product count: %w", err)
	}
	return nil
}
