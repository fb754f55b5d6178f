// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the ShopPress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoppress/internal/cache"
	"shoppress/internal/config"
	"shoppress/internal/database"
	"shoppress/internal/handlers"
	"shoppress/internal/middleware"
	"shoppress/internal/router"
	"shoppress/internal/session"
	"shoppress/internal/storage"
	"shoppress/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions, page cache, SEO settings cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	seoCache := cache.NewSEOCache(valkeyClient, cache.DefaultSEOTTL)

	// Connect to S3-compatible object storage (optional; catalog images
	// and billing attachments are disabled without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"public_bucket", cfg.S3BucketPublic,
				"private_bucket", cfg.S3BucketPrivate,
			)
		}
	} else {
		slog.Warn("s3 storage not configured, file uploads disabled")
	}

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	contentStore := store.NewContentStore(db)
	seoSettingStore := store.NewSEOSettingStore(db)
	storeSettingStore := store.NewStoreSettingStore(db)
	calculatorStore := store.NewCalculatorStore(db)
	submissionStore := store.NewSubmissionStore(db)
	proposalStore := store.NewProposalStore(db)
	invoiceStore := store.NewInvoiceStore(db)
	messageStore := store.NewMessageStore(db)
	wishlistStore := store.NewWishlistStore(db)
	userStore := store.NewUserStore(db)
	auditStore := store.NewAuditLogStore(db)

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(handlers.AdminDeps{
		Categories:    categoryStore,
		Products:      productStore,
		Content:       contentStore,
		SEOSettings:   seoSettingStore,
		StoreSettings: storeSettingStore,
		Calculators:   calculatorStore,
		Submissions:   submissionStore,
		Proposals:     proposalStore,
		Invoices:      invoiceStore,
		Messages:      messageStore,
		Wishlists:     wishlistStore,
		Audit:         auditStore,
		PageCache:     pageCache,
		SEOCache:      seoCache,
		StorageClient: storageClient,
	})
	authHandlers := handlers.NewAuth(userStore, sessionStore)
	publicHandlers := handlers.NewPublic(handlers.PublicDeps{
		Categories:    categoryStore,
		Products:      productStore,
		Content:       contentStore,
		SEOSettings:   seoSettingStore,
		StoreSettings: storeSettingStore,
		Calculators:   calculatorStore,
		Submissions:   submissionStore,
		Proposals:     proposalStore,
		Messages:      messageStore,
		Wishlists:     wishlistStore,
		PageCache:     pageCache,
		SEOCache:      seoCache,
		StorageClient: storageClient,
	})

	// Per-IP rate limiter for the public submission endpoints.
	limiter := middleware.NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, limiter, secureCookies)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
