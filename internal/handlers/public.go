// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shoppress/internal/cache"
	"shoppress/internal/estimate"
	"shoppress/internal/markdown"
	"shoppress/internal/models"
	"shoppress/internal/seo"
	"shoppress/internal/storage"
	"shoppress/internal/store"
)

// Public groups the storefront handlers. Every page response carries the
// resolved SEO metadata for its route; read-heavy pages go through the
// Valkey page cache.
type Public struct {
	categories    *store.CategoryStore
	products      *store.ProductStore
	content       *store.ContentStore
	seoSettings   *store.SEOSettingStore
	storeSettings *store.StoreSettingStore
	calculators   *store.CalculatorStore
	submissions   *store.SubmissionStore
	proposals     *store.ProposalStore
	messages      *store.MessageStore
	wishlists     *store.WishlistStore
	pageCache     *cache.PageCache
	seoCache      *cache.SEOCache
	storageClient *storage.Client
}

// PublicDeps carries the stores and caches wired into the public handler
// group.
type PublicDeps struct {
	Categories    *store.CategoryStore
	Products      *store.ProductStore
	Content       *store.ContentStore
	SEOSettings   *store.SEOSettingStore
	StoreSettings *store.StoreSettingStore
	Calculators   *store.CalculatorStore
	Submissions   *store.SubmissionStore
	Proposals     *store.ProposalStore
	Messages      *store.MessageStore
	Wishlists     *store.WishlistStore
	PageCache     *cache.PageCache
	SEOCache      *cache.SEOCache
	StorageClient *storage.Client
}

// NewPublic creates a new Public handler group. StorageClient may be nil
// if S3 is not configured.
func NewPublic(deps PublicDeps) *Public {
	return &Public{
		categories:    deps.Categories,
		products:      deps.Products,
		content:       deps.Content,
		seoSettings:   deps.SEOSettings,
		storeSettings: deps.StoreSettings,
		calculators:   deps.Calculators,
		submissions:   deps.Submissions,
		proposals:     deps.Proposals,
		messages:      deps.Messages,
		wishlists:     deps.Wishlists,
		pageCache:     deps.PageCache,
		seoCache:      deps.SEOCache,
		storageClient: deps.StorageClient,
	}
}

// loadSEOSettings returns the settings document, preferring the Valkey
// cache and falling back to the database.
func (p *Public) loadSEOSettings(ctx context.Context) *models.SEOSettings {
	if cached := p.seoCache.Get(ctx); cached != nil {
		return cached
	}
	settings, err := p.seoSettings.Load()
	if err != nil {
		slog.Error("load seo settings failed", "error", err)
		return models.DefaultSEOSettings()
	}
	p.seoCache.Set(ctx, settings)
	return settings
}

// pagePayload is the envelope for storefront page responses.
type pagePayload struct {
	Data any                `json:"data"`
	SEO  models.ResolvedSEO `json:"seo"`
}

// serveCached writes a cached payload if present.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if cached, ok := p.pageCache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(cached)
		return true
	}
	return false
}

// cacheAndRespond stores the payload and writes it.
func (p *Public) cacheAndRespond(w http.ResponseWriter, r *http.Request, key string, payload pagePayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal page payload failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	p.pageCache.Set(r.Context(), key, body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

// Shop returns the category tree and active products for the shop
// landing page.
func (p *Public) Shop(w http.ResponseWriter, r *http.Request) {
	tree, err := p.categories.Tree()
	if err != nil {
		slog.Error("load category tree failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load shop failed")
		return
	}
	products, err := p.products.ListActive()
	if err != nil {
		slog.Error("list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load shop failed")
		return
	}
	settings, err := p.storeSettings.All()
	if err != nil {
		slog.Warn("load store settings failed", "error", err)
	}

	respondJSON(w, http.StatusOK, pagePayload{
		Data: map[string]any{
			"categories": tree,
			"products":   products,
			"store":      settings,
		},
		SEO: seo.Resolve(p.loadSEOSettings(r.Context()), "/shop"),
	})
}

// CategoryPage returns a category, its breadcrumb trail, and the active
// products of its whole subtree. The route is the category's full
// hierarchical slug.
func (p *Public) CategoryPage(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "*")
	if categorySlug == "" {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	key := cache.CategoryKey(categorySlug)
	if p.serveCached(w, r, key) {
		return
	}

	category, err := p.categories.FindBySlug(categorySlug)
	if err != nil {
		slog.Error("find category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load category failed")
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	crumbs, err := p.categories.Breadcrumbs(category.ID)
	if err != nil {
		slog.Error("breadcrumbs failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load category failed")
		return
	}
	subtree, err := p.categories.AllDescendantIDs(category.ID)
	if err != nil {
		slog.Error("descendants failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load category failed")
		return
	}
	products, err := p.products.ListByCategories(subtree)
	if err != nil {
		slog.Error("list category products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load category failed")
		return
	}

	settings := p.loadSEOSettings(r.Context())
	resolved := seo.Resolve(settings, "/shop/"+categorySlug)
	if resolved.Title == settings.Global.SiteTitle {
		// No explicit page or pattern override: fall back to the
		// category template.
		resolved = seo.ResolveTemplate(settings, models.SEOTemplateCategory, map[string]string{
			"category_name": category.Name,
			"product_count": strconv.Itoa(category.ProductCount),
		})
	}

	p.cacheAndRespond(w, r, key, pagePayload{
		Data: map[string]any{
			"category":    category,
			"breadcrumbs": crumbs,
			"products":    products,
		},
		SEO: resolved,
	})
}

// ProductPage returns one product with its category breadcrumb trail.
func (p *Public) ProductPage(w http.ResponseWriter, r *http.Request) {
	productSlug := chi.URLParam(r, "slug")

	key := cache.ProductKey(productSlug)
	if p.serveCached(w, r, key) {
		return
	}

	product, err := p.products.FindBySlug(productSlug)
	if err != nil {
		slog.Error("find product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load product failed")
		return
	}
	if product == nil || !product.Active {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	var crumbs []models.Category
	if product.CategoryID != nil {
		crumbs, err = p.categories.Breadcrumbs(*product.CategoryID)
		if err != nil {
			slog.Warn("breadcrumbs failed", "error", err)
		}
	}

	settings := p.loadSEOSettings(r.Context())
	vars := map[string]string{
		"product_name": product.Name,
		"price":        formatPrice(product.Price),
		"vendor":       product.Vendor,
	}
	if len(crumbs) > 0 {
		vars["category_name"] = crumbs[len(crumbs)-1].Name
	}

	p.cacheAndRespond(w, r, key, pagePayload{
		Data: map[string]any{
			"product":     product,
			"breadcrumbs": crumbs,
		},
		SEO: seo.ResolveTemplate(settings, models.SEOTemplateProduct, vars),
	})
}

// Blog returns the published post listing.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := p.content.ListPublished(models.ContentTypePost)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load blog failed")
		return
	}

	respondJSON(w, http.StatusOK, pagePayload{
		Data: map[string]any{"posts": posts},
		SEO:  seo.Resolve(p.loadSEOSettings(r.Context()), "/blog"),
	})
}

// ContentPage returns a published post or page with its body rendered
// to HTML.
func (p *Public) ContentPage(w http.ResponseWriter, r *http.Request) {
	contentSlug := chi.URLParam(r, "slug")

	key := cache.ContentKey(contentSlug)
	if p.serveCached(w, r, key) {
		return
	}

	item, err := p.content.FindPublishedBySlug(contentSlug)
	if err != nil {
		slog.Error("find content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load content failed")
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	body := item.Body
	if item.BodyFormat == models.BodyFormatMarkdown {
		body, err = markdown.ToHTML(item.Body)
		if err != nil {
			slog.Error("render markdown failed", "error", err)
			respondError(w, http.StatusInternalServerError, "load content failed")
			return
		}
	}

	settings := p.loadSEOSettings(r.Context())
	resolved := seo.Resolve(settings, contentRoute(item))
	if resolved.Title == settings.Global.SiteTitle {
		excerpt := ""
		if item.Excerpt != nil {
			excerpt = *item.Excerpt
		}
		resolved = seo.ResolveTemplate(settings, models.SEOTemplateContent, map[string]string{
			"title":   item.Title,
			"excerpt": excerpt,
		})
	}

	p.cacheAndRespond(w, r, key, pagePayload{
		Data: map[string]any{
			"content": item,
			"html":    body,
		},
		SEO: resolved,
	})
}

// CalculatorGet returns an active calculator definition for rendering
// the estimate form.
func (p *Public) CalculatorGet(w http.ResponseWriter, r *http.Request) {
	calc, err := p.calculators.FindActiveBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("find calculator failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load calculator failed")
		return
	}
	if calc == nil {
		respondError(w, http.StatusNotFound, "calculator not found")
		return
	}

	respondJSON(w, http.StatusOK, pagePayload{
		Data: calc,
		SEO:  seo.Resolve(p.loadSEOSettings(r.Context()), "/calculators/"+calc.Slug),
	})
}

type calculatorSubmitRequest struct {
	Name       string                  `json:"name"`
	Email      string                  `json:"email"`
	HourlyRate float64                 `json:"hourly_rate"`
	Selections []models.FieldSelection `json:"selections"`
}

// CalculatorSubmit computes an estimate from the visitor's selections,
// records an immutable submission snapshot, and drops a summary message
// into the inbox.
func (p *Public) CalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	calc, err := p.calculators.FindActiveBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("find calculator failed", "error", err)
		respondError(w, http.StatusInternalServerError, "submit failed")
		return
	}
	if calc == nil {
		respondError(w, http.StatusNotFound, "calculator not found")
		return
	}

	var req calculatorSubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateEmail(req.Email); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	result := estimate.Compute(calc, req.Selections, req.HourlyRate)

	sub, err := p.submissions.Create(&models.CalculatorSubmission{
		CalculatorID: calc.ID,
		Name:         req.Name,
		Email:        req.Email,
		Selections:   req.Selections,
		TotalHours:   result.TotalHours,
		HourlyRate:   result.HourlyRate,
		TotalPrice:   result.TotalPrice,
	})
	if err != nil {
		slog.Error("record submission failed", "error", err)
		respondError(w, http.StatusInternalServerError, "submit failed")
		return
	}

	// The inbox message snapshots the human-readable summary, so it
	// stays meaningful even after the calculator is edited.
	_, err = p.messages.Create(&models.ContactMessage{
		Name:         req.Name,
		Email:        req.Email,
		Subject:      "Estimate request: " + calc.Title,
		Body:         estimate.Summary(calc, req.Selections, result),
		Source:       models.MessageSourceCalculator,
		SubmissionID: &sub.ID,
	})
	if err != nil {
		slog.Warn("create inbox message failed", "error", err)
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"submission_id": sub.ID,
		"total_hours":   result.TotalHours,
		"hourly_rate":   result.HourlyRate,
		"total_price":   result.TotalPrice,
	})
}

// ProposalView returns a proposal through its share link, recording the
// first view. Attachment keys are exchanged for short-lived presigned
// URLs.
func (p *Public) ProposalView(w http.ResponseWriter, r *http.Request) {
	proposal, err := p.proposals.FindByShareToken(chi.URLParam(r, "token"))
	if err != nil {
		slog.Error("find proposal by token failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load proposal failed")
		return
	}
	if proposal == nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}

	if err := p.proposals.MarkViewed(proposal.ID); err != nil {
		slog.Warn("mark proposal viewed failed", "error", err)
	} else if proposal.Status == models.ProposalSent {
		proposal.Status = models.ProposalViewed
		now := time.Now()
		proposal.ViewedAt = &now
	}

	attachments := make(map[string]string)
	if p.storageClient != nil {
		for _, attKey := range proposal.Attachments {
			url, err := p.storageClient.PresignedURL(r.Context(), p.storageClient.PrivateBucket(), attKey, attachmentURLTTL)
			if err != nil {
				slog.Warn("presign attachment failed", "key", attKey, "error", err)
				continue
			}
			attachments[attKey] = url
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"proposal":        proposal,
		"attachment_urls": attachments,
	})
}

type proposalResponseRequest struct {
	Response string `json:"response"` // "accept" or "reject"
}

// ProposalRespond records the client's decision through the share link.
func (p *Public) ProposalRespond(w http.ResponseWriter, r *http.Request) {
	proposal, err := p.proposals.FindByShareToken(chi.URLParam(r, "token"))
	if err != nil {
		slog.Error("find proposal by token failed", "error", err)
		respondError(w, http.StatusInternalServerError, "respond failed")
		return
	}
	if proposal == nil {
		respondError(w, http.StatusNotFound, "proposal not found")
		return
	}

	var req proposalResponseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var to models.ProposalStatus
	switch req.Response {
	case "accept":
		to = models.ProposalAccepted
	case "reject":
		to = models.ProposalRejected
	default:
		respondError(w, http.StatusBadRequest, "response must be accept or reject")
		return
	}

	if err := p.proposals.Transition(proposal.ID, to); err != nil {
		respondError(w, http.StatusConflict, "proposal can no longer be responded to")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(to)})
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ContactSubmit records a contact form message in the inbox.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateContactMessage(req.Name, req.Email, req.Subject, req.Body); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := p.messages.Create(&models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
		Source:  models.MessageSourceContact,
	})
	if err != nil {
		slog.Error("create contact message failed", "error", err)
		respondError(w, http.StatusInternalServerError, "send message failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"id": created.ID})
}

type wishlistRequest struct {
	Email string `json:"email"`
}

// WishlistJoin signs an email up for a back-in-stock notification on a
// product.
func (p *Public) WishlistJoin(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req wishlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateEmail(req.Email); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := p.products.FindByID(productID)
	if err != nil {
		slog.Error("find product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "wishlist signup failed")
		return
	}
	if product == nil || !product.Active {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	entry, err := p.wishlists.Add(req.Email, productID)
	if err == store.ErrDuplicateEntry {
		respondError(w, http.StatusConflict, "already on the wishlist for this product")
		return
	}
	if err != nil {
		slog.Error("wishlist add failed", "error", err)
		respondError(w, http.StatusInternalServerError, "wishlist signup failed")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// formatPrice renders a price for SEO template substitution.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// contentRoute is the storefront URL a content item is served at. SEO
// page overrides are keyed by this route, so it must match the mounted
// paths exactly: posts live under /blog, static pages under /pages.
func contentRoute(item *models.Content) string {
	if item.Type == models.ContentTypePost {
		return "/blog/" + item.Slug
	}
	return "/pages/" + item.Slug
}
