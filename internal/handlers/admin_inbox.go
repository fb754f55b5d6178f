// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
)

// --- Inbox ---

// MessagesList returns all inbox messages with the unread count.
func (a *Admin) MessagesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.messages.List()
	if err != nil {
		slog.Error("list messages failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list messages failed")
		return
	}
	unread, err := a.messages.UnreadCount()
	if err != nil {
		slog.Warn("unread count failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"messages": items,
		"unread":   unread,
	})
}

// MessageRead flags a message as handled.
func (a *Admin) MessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.messages.MarkRead(id); err != nil {
		slog.Error("mark message read failed", "error", err)
		respondError(w, http.StatusInternalServerError, "mark message read failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MessageDelete removes a message from the inbox.
func (a *Admin) MessageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := a.messages.Delete(id); err != nil {
		slog.Error("delete message failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete message failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// --- Wishlist ---

// WishlistByProduct lists signups for one product, join order preserved.
func (a *Admin) WishlistByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	items, err := a.wishlists.ListByProduct(id)
	if err != nil {
		slog.Error("list wishlist failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list wishlist failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type notifiedRequest struct {
	IDs []string `json:"ids"`
}

// WishlistMarkNotified flags signups as notified after the restock mail
// went out.
func (a *Admin) WishlistMarkNotified(w http.ResponseWriter, r *http.Request) {
	var req notifiedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id in list")
		return
	}

	if err := a.wishlists.MarkNotified(ids); err != nil {
		slog.Error("mark wishlist notified failed", "error", err)
		respondError(w, http.StatusInternalServerError, "mark wishlist notified failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"updated": len(ids)})
}

// --- Store settings ---

// StoreSettingsGet returns all store settings.
func (a *Admin) StoreSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := a.storeSettings.All()
	if err != nil {
		slog.Error("load store settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "load store settings failed")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// StoreSettingsSave upserts the posted settings in one transaction.
func (a *Admin) StoreSettingsSave(w http.ResponseWriter, r *http.Request) {
	var settings map[string]string
	if !decodeJSON(w, r, &settings) {
		return
	}
	if len(settings) == 0 {
		respondError(w, http.StatusBadRequest, "no settings given")
		return
	}

	if err := a.storeSettings.SetMany(settings); err != nil {
		slog.Error("save store settings failed", "error", err)
		respondError(w, http.StatusInternalServerError, "save store settings failed")
		return
	}

	a.audit.Record(actorID(r), "update", "store_settings", "")
	a.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// --- Audit log ---

// AuditLog returns the most recent audit entries. ?limit= caps the page.
func (a *Admin) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	items, err := a.audit.Recent(limit)
	if err != nil {
		slog.Error("list audit entries failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list audit entries failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}
