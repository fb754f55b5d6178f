// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// ShopPress server. Routes are organized into the public storefront API
// and the authenticated admin API with their own middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoppress/internal/handlers"
	"shoppress/internal/middleware"
	"shoppress/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The rate limiter guards the public
// endpoints that write to the inbox; the caller owns its lifecycle.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, limiter *middleware.RateLimiter, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Admin API. Everything under /admin except login requires an
	// authenticated admin session; mutations require the CSRF token.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.LoadSession(sessionStore))
		r.Use(middleware.CSRF(secureCookies))

		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			// Catalog
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Post("/", admin.CategoryCreate)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ProductsList)
				r.Post("/", admin.ProductCreate)
				r.Put("/{id}", admin.ProductUpdate)
				r.Delete("/{id}", admin.ProductDelete)
				r.Get("/{id}/wishlist", admin.WishlistByProduct)
			})
			r.Post("/wishlist/notified", admin.WishlistMarkNotified)

			// Content
			r.Route("/content", func(r chi.Router) {
				r.Get("/", admin.ContentList)
				r.Post("/", admin.ContentCreate)
				r.Put("/{id}", admin.ContentUpdate)
				r.Delete("/{id}", admin.ContentDelete)
			})

			// SEO
			r.Route("/seo", func(r chi.Router) {
				r.Get("/", admin.SEOSettingsGet)
				r.Put("/", admin.SEOSettingsSave)
				r.Post("/validate", admin.SEOSettingsValidate)
				r.Post("/preview", admin.SEOPreview)
			})

			// Billing
			r.Route("/proposals", func(r chi.Router) {
				r.Get("/", admin.ProposalsList)
				r.Post("/", admin.ProposalCreate)
				r.Get("/{id}", admin.ProposalGet)
				r.Put("/{id}", admin.ProposalUpdate)
				r.Delete("/{id}", admin.ProposalDelete)
				r.Post("/{id}/transition", admin.ProposalTransition)
				r.Post("/{id}/convert", admin.ProposalConvert)
			})
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", admin.InvoicesList)
				r.Post("/", admin.InvoiceCreate)
				r.Get("/{id}", admin.InvoiceGet)
				r.Put("/{id}", admin.InvoiceUpdate)
				r.Delete("/{id}", admin.InvoiceDelete)
				r.Post("/{id}/transition", admin.InvoiceTransition)
			})
			r.Get("/attachments/url", admin.AttachmentURL)

			// Calculators
			r.Route("/calculators", func(r chi.Router) {
				r.Get("/", admin.CalculatorsList)
				r.Post("/", admin.CalculatorCreate)
				r.Put("/{id}", admin.CalculatorUpdate)
				r.Delete("/{id}", admin.CalculatorDelete)
				r.Get("/{id}/submissions", admin.CalculatorSubmissions)
			})

			// Inbox
			r.Route("/messages", func(r chi.Router) {
				r.Get("/", admin.MessagesList)
				r.Post("/{id}/read", admin.MessageRead)
				r.Delete("/{id}", admin.MessageDelete)
			})

			// Settings and audit trail
			r.Get("/settings", admin.StoreSettingsGet)
			r.Put("/settings", admin.StoreSettingsSave)
			r.Get("/audit", admin.AuditLog)
		})
	})

	// Public storefront API.
	r.Get("/shop", public.Shop)
	r.Get("/shop/*", public.CategoryPage)
	r.Get("/products/{slug}", public.ProductPage)
	r.Get("/blog", public.Blog)
	r.Get("/blog/{slug}", public.ContentPage)
	r.Get("/pages/{slug}", public.ContentPage)
	r.Get("/calculators/{slug}", public.CalculatorGet)
	r.Get("/p/{token}", public.ProposalView)

	// Public endpoints that write to the inbox are rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/contact", public.ContactSubmit)
		r.Post("/calculators/{slug}/submit", public.CalculatorSubmit)
		r.Post("/p/{token}/respond", public.ProposalRespond)
		r.Post("/wishlist/{id}", public.WishlistJoin)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
