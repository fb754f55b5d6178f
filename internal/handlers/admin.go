// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shoppress/internal/cache"
	"shoppress/internal/middleware"
	"shoppress/internal/models"
	"shoppress/internal/storage"
	"shoppress/internal/store"
)

// Admin groups all back-office HTTP handlers and their dependencies.
type Admin struct {
	categories    *store.CategoryStore
	products      *store.ProductStore
	content       *store.ContentStore
	seoSettings   *store.SEOSettingStore
	storeSettings *store.StoreSettingStore
	calculators   *store.CalculatorStore
	submissions   *store.SubmissionStore
	proposals     *store.ProposalStore
	invoices      *store.InvoiceStore
	messages      *store.MessageStore
	wishlists     *store.WishlistStore
	audit         *store.AuditLogStore
	pageCache     *cache.PageCache
	seoCache      *cache.SEOCache
	storageClient *storage.Client
}

// AdminDeps carries the stores and caches wired into the admin handler
// group. The struct keeps NewAdmin's signature manageable.
type AdminDeps struct {
	Categories    *store.CategoryStore
	Products      *store.ProductStore
	Content       *store.ContentStore
	SEOSettings   *store.SEOSettingStore
	StoreSettings *store.StoreSettingStore
	Calculators   *store.CalculatorStore
	Submissions   *store.SubmissionStore
	Proposals     *store.ProposalStore
	Invoices      *store.InvoiceStore
	Messages      *store.MessageStore
	Wishlists     *store.WishlistStore
	Audit         *store.AuditLogStore
	PageCache     *cache.PageCache
	SEOCache      *cache.SEOCache
	StorageClient *storage.Client
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// StorageClient may be nil if S3 is not configured.
func NewAdmin(deps AdminDeps) *Admin {
	return &Admin{
		categories:    deps.Categories,
		products:      deps.Products,
		content:       deps.Content,
		seoSettings:   deps.SEOSettings,
		storeSettings: deps.StoreSettings,
		calculators:   deps.Calculators,
		submissions:   deps.Submissions,
		proposals:     deps.Proposals,
		invoices:      deps.Invoices,
		messages:      deps.Messages,
		wishlists:     deps.Wishlists,
		audit:         deps.Audit,
		pageCache:     deps.PageCache,
		seoCache:      deps.SEOCache,
		storageClient: deps.StorageClient,
	}
}

// actorID returns the authenticated user's ID for audit entries.
func actorID(r *http.Request) uuid.UUID {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return sess.UserID
	}
	return uuid.Nil
}

// pathID parses the {id} URL parameter. Writes a 400 and returns false
// on malformed input.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// --- Categories ---

// CategoriesList returns the category tree.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	tree, err := a.categories.Tree()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list categories failed")
		return
	}
	respondJSON(w, http.StatusOK, tree)
}

type categoryRequest struct {
	Name      string     `json:"name"`
	Image     *string    `json:"image"`
	ParentID  *uuid.UUID `json:"parent_id"`
	SortOrder int        `json:"sort_order"`
}

// CategoryCreate inserts a new category under an optional parent.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := a.categories.Create(&models.Category{
		Name:      req.Name,
		Image:     req.Image,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if errors.Is(err, store.ErrParentNotFound) {
		respondError(w, http.StatusUnprocessableEntity, "parent category not found")
		return
	}
	if err != nil {
		slog.Error("create category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "create category failed")
		return
	}

	a.audit.Record(actorID(r), "create", "category:"+created.ID.String(), created.Name)
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

// CategoryUpdate renames a category or changes its image/sort order.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	err := a.categories.Update(&models.Category{
		ID:        id,
		Name:      req.Name,
		Image:     req.Image,
		SortOrder: req.SortOrder,
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		slog.Error("update category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update category failed")
		return
	}

	a.audit.Record(actorID(r), "update", "category:"+id.String(), req.Name)
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// CategoryDelete removes an empty leaf category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := a.categories.Delete(id)
	if errors.Is(err, store.ErrHasChildren) {
		respondError(w, http.StatusConflict, "category still has child categories")
		return
	}
	if errors.Is(err, store.ErrHasProducts) {
		respondError(w, http.StatusConflict, "category still has assigned products")
		return
	}
	if err != nil {
		slog.Error("delete category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete category failed")
		return
	}

	a.audit.Record(actorID(r), "delete", "category:"+id.String(), "")
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusNoContent, nil)
}

// --- Products ---

// ProductsList returns all products for the back office.
func (a *Admin) ProductsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.products.List()
	if err != nil {
		slog.Error("list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list products failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type productRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Image       *string    `json:"image"`
	Active      bool       `json:"active"`
	InStock     bool       `json:"in_stock"`
	Vendor      string     `json:"vendor"`
}

// ProductCreate inserts a new product.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	created, err := a.products.Create(&models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		Active:      req.Active,
		InStock:     req.InStock,
		Vendor:      req.Vendor,
	})
	if errors.Is(err, store.ErrParentNotFound) {
		respondError(w, http.StatusUnprocessableEntity, "category not found")
		return
	}
	if err != nil {
		slog.Error("create product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "create product failed")
		return
	}

	a.audit.Record(actorID(r), "create", "product:"+created.ID.String(), created.Name)
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

// ProductUpdate modifies a product; category reassignment moves the
// denormalized counts with it.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	current, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update product failed")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	wasOutOfStock := !current.InStock

	err = a.products.Update(&models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		Active:      req.Active,
		InStock:     req.InStock,
		Vendor:      req.Vendor,
	})
	if err != nil {
		slog.Error("update product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update product failed")
		return
	}

	// Restock: surface pending wishlist signups so the operator can
	// notify them.
	var pending []models.WishlistEntry
	if wasOutOfStock && req.InStock {
		pending, err = a.wishlists.PendingByProduct(id)
		if err != nil {
			slog.Warn("list pending wishlist entries failed", "error", err)
		}
	}

	a.audit.Record(actorID(r), "update", "product:"+id.String(), req.Name)
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"status":           "updated",
		"wishlist_pending": pending,
	})
}

// ProductDelete removes a product.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.products.Delete(id); err != nil {
		slog.Error("delete product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete product failed")
		return
	}

	a.audit.Record(actorID(r), "delete", "product:"+id.String(), "")
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusNoContent, nil)
}
