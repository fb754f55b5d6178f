package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"shoppress/internal/models"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content-type: got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body: got %v", body)
	}
}

func TestRespondJSONNilPayload(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusNoContent, nil)

	if w.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body: got %q, want empty", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok"}`))

		var dst payload
		if !decodeJSON(w, r, &dst) {
			t.Fatalf("decode failed: %s", w.Body.String())
		}
		if dst.Name != "ok" {
			t.Errorf("name: got %q", dst.Name)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ok","extra":1}`))

		var dst payload
		if decodeJSON(w, r, &dst) {
			t.Fatal("expected decode to fail")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", w.Code)
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))

		var dst payload
		if decodeJSON(w, r, &dst) {
			t.Fatal("expected decode to fail")
		}
	})
}

func TestParseUUIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	ids, err := parseUUIDs([]string{a.String(), b.String()})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("ids: got %v", ids)
	}

	if _, err := parseUUIDs([]string{a.String(), "not-a-uuid"}); err == nil {
		t.Error("expected an error for bad uuid")
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{19.9, "19.90"},
		{1234.567, "1234.57"},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.in); got != tt.want {
			t.Errorf("formatPrice(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

// SEO page overrides are keyed by the URL a content item is actually
// served at, so the route must carry the /pages or /blog prefix.
func TestContentRouteMatchesServedPaths(t *testing.T) {
	tests := []struct {
		contentType models.ContentType
		slug        string
		want        string
	}{
		{models.ContentTypePage, "about", "/pages/about"},
		{models.ContentTypePost, "launch-week", "/blog/launch-week"},
	}
	for _, tt := range tests {
		item := &models.Content{Type: tt.contentType, Slug: tt.slug}
		if got := contentRoute(item); got != tt.want {
			t.Errorf("contentRoute(%s %q): got %q, want %q", tt.contentType, tt.slug, got, tt.want)
		}
	}
}
