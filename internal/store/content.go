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

// ContentStore manages posts and pages in the database.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore returns a new ContentStore.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, type, title, slug, body, body_format, excerpt, status, author_id, published_at, created_at, updated_at`

// scanContent scans a row into a Content struct.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.BodyFormat,
		&c.Excerpt, &c.Status, &c.AuthorID, &c.PublishedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all content of the given type, newest first.
func (s *ContentStore) List(contentType models.ContentType) ([]models.Content, error) {
	rows, err := s.db.Query(`
		SELECT `+contentColumns+` FROM content
		WHERE type = $1
		ORDER BY created_at DESC`, contentType)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()
	return collectContent(rows)
}

// ListPublished returns published content of the given type, most
// recently published first. Used by the storefront.
func (s *ContentStore) ListPublished(contentType models.ContentType) ([]models.Content, error) {
	rows, err := s.db.Query(`
		SELECT `+contentColumns+` FROM content
		WHERE type = $1 AND status = $2
		ORDER BY published_at DESC NULLS LAST`, contentType, models.ContentStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list published content: %w", err)
	}
	defer rows.Close()
	return collectContent(rows)
}

func collectContent(rows *sql.Rows) ([]models.Content, error) {
	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves content by ID. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindPublishedBySlug retrieves published content by slug. Returns nil
// if not found or not published; drafts are never visible publicly.
func (s *ContentStore) FindPublishedBySlug(contentSlug string) (*models.Content, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+` FROM content
		WHERE slug = $1 AND status = $2`, contentSlug, models.ContentStatusPublished)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// Create inserts new content. The slug is generated from the title, and
// published_at is stamped when the content is created already published.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	var publishedAt *time.Time
	if c.Status == models.ContentStatusPublished {
		now := time.Now()
		publishedAt = &now
	}

	row := s.db.QueryRow(`
		INSERT INTO content (type, title, slug, body, body_format, excerpt, status, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+contentColumns,
		c.Type, c.Title, slug.Generate(c.Title), c.Body, c.BodyFormat,
		c.Excerpt, c.Status, c.AuthorID, publishedAt,
	)
	result, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// Update modifies existing content. The slug is preserved so published
// URLs stay stable; published_at is stamped on the first transition to
// published and kept on later edits.
func (s *ContentStore) Update(c *models.Content) error {
	current, err := s.FindByID(c.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return sql.ErrNoRows
	}

	publishedAt := current.PublishedAt
	if c.Status == models.ContentStatusPublished && publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	_, err = s.db.Exec(`
		UPDATE content SET
			title = $1, body = $2, body_format = $3, excerpt = $4,
			status = $5, published_at = $6, updated_at = $7
		WHERE id = $8`,
		c.Title, c.Body, c.BodyFormat, c.Excerpt,
		c.Status, publishedAt, time.Now(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// Delete removes content by ID.
func (s *ContentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
