// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"shoppress/internal/cache"
	"shoppress/internal/middleware"
	"shoppress/internal/models"
)

// ContentList returns posts or pages depending on the ?type= query.
func (a *Admin) ContentList(w http.ResponseWriter, r *http.Request) {
	contentType := models.ContentTypePost
	if r.URL.Query().Get("type") == string(models.ContentTypePage) {
		contentType = models.ContentTypePage
	}

	items, err := a.content.List(contentType)
	if err != nil {
		slog.Error("list content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "list content failed")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type contentRequest struct {
	Type       models.ContentType   `json:"type"`
	Title      string               `json:"title"`
	Body       string               `json:"body"`
	BodyFormat models.BodyFormat    `json:"body_format"`
	Excerpt    *string              `json:"excerpt"`
	Status     models.ContentStatus `json:"status"`
}

func (req *contentRequest) validate() string {
	if req.Title == "" {
		return "title is required"
	}
	if req.Type != models.ContentTypePost && req.Type != models.ContentTypePage {
		return "type must be post or page"
	}
	if req.Status != models.ContentStatusDraft && req.Status != models.ContentStatusPublished {
		return "status must be draft or published"
	}
	if req.BodyFormat != models.BodyFormatMarkdown && req.BodyFormat != models.BodyFormatHTML {
		return "body_format must be markdown or html"
	}
	return ""
}

// ContentCreate inserts a new post or page authored by the session user.
func (a *Admin) ContentCreate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BodyFormat == "" {
		req.BodyFormat = models.BodyFormatMarkdown
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	created, err := a.content.Create(&models.Content{
		Type:       req.Type,
		Title:      req.Title,
		Body:       req.Body,
		BodyFormat: req.BodyFormat,
		Excerpt:    req.Excerpt,
		Status:     req.Status,
		AuthorID:   sess.UserID,
	})
	if err != nil {
		slog.Error("create content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "create content failed")
		return
	}

	a.audit.Record(sess.UserID, "create", "content:"+created.ID.String(), created.Title)
	respondJSON(w, http.StatusCreated, created)
}

// ContentUpdate modifies a post or page. The slug stays stable.
func (a *Admin) ContentUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req contentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BodyFormat == "" {
		req.BodyFormat = models.BodyFormatMarkdown
	}
	if req.Type == "" {
		req.Type = models.ContentTypePost
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	err := a.content.Update(&models.Content{
		ID:         id,
		Title:      req.Title,
		Body:       req.Body,
		BodyFormat: req.BodyFormat,
		Excerpt:    req.Excerpt,
		Status:     req.Status,
	})
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "content not found")
		return
	}
	if err != nil {
		slog.Error("update content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "update content failed")
		return
	}

	a.audit.Record(actorID(r), "update", "content:"+id.String(), req.Title)
	current, err := a.content.FindByID(id)
	if err == nil && current != nil {
		a.pageCache.Invalidate(r.Context(), cache.ContentKey(current.Slug))
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ContentDelete removes a post or page.
func (a *Admin) ContentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	current, err := a.content.FindByID(id)
	if err != nil {
		slog.Error("find content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete content failed")
		return
	}
	if current == nil {
		respondError(w, http.StatusNotFound, "content not found")
		return
	}

	if err := a.content.Delete(id); err != nil {
		slog.Error("delete content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "delete content failed")
		return
	}

	a.audit.Record(actorID(r), "delete", "content:"+id.String(), current.Title)
	a.pageCache.Invalidate(r.Context(), cache.ContentKey(current.Slug))
	respondJSON(w, http.StatusNoContent, nil)
}
