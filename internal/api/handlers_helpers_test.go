// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/trickortreat/internal/database"
	"github.com/tomtom215/trickortreat/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain.png", "plain.png"},
		{"line\nbreak", "line\\x0abreak"},
		{"tab\there", "tab\\x09here"},
		{"del\x7f", "del\\x7f"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeLogValue(tt.input); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultValue int
		want         int
	}{
		{"missing", "", 10, 10},
		{"valid", "page=3", 1, 3},
		{"padded", "page=%204%20", 1, 4},
		{"negative", "page=-2", 1, -2},
		{"not a number", "page=two", 1, 1},
		{"float", "page=1.5", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			if got := getIntParam(req, "page", tt.defaultValue); got != tt.want {
				t.Errorf("getIntParam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		got, err := pathID(req, "id")
		if (err != nil) != tt.wantErr {
			t.Errorf("pathID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errInvalidID) {
			t.Errorf("pathID(%q) error should wrap errInvalidID", tt.raw)
		}
		if got != tt.want {
			t.Errorf("pathID(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Ghost@Haunted.Example "); got != "ghost@haunted.example" {
		t.Errorf("normalizeEmail() = %q", got)
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"empty", "", http.StatusBadRequest},
		{"whitespace only", "  \n ", http.StatusBadRequest},
		{"malformed", "{", http.StatusBadRequest},
		{"wrong type", `{"wantsToBeTreatProvider":"yes"}`, http.StatusBadRequest},
		{"too large", `{"x":"` + strings.Repeat("a", maxJSONBodyBytes) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst models.ProviderStatusRequest
			if decodeAndValidate(w, req, &dst) {
				t.Fatal("decodeAndValidate should fail")
			}
			assertError(t, w, tt.wantStatus, "")
		})
	}
}

func TestWriteStoreError(t *testing.T) {
	msgs := storeErrorMessages{notFound: "Treat provider not found", duplicate: "House already saved"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", fmt.Errorf("get: %w", database.ErrNotFound), http.StatusNotFound, "Treat provider not found"},
		{"not provider", database.ErrNotProvider, http.StatusNotFound, "User is not a treat provider"},
		{"duplicate", fmt.Errorf("save: %w", database.ErrDuplicate), http.StatusConflict, "House already saved"},
		{"conflict", database.ErrConflict, http.StatusConflict, ""},
		{"unavailable", database.ErrUnavailable, http.StatusServiceUnavailable, "Database unavailable"},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, ""},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			writeStoreError(w, req, tt.err, msgs)
			assertError(t, w, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestWriteStoreError_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	writeStoreError(w, req, database.ErrNotFound, storeErrorMessages{})
	assertError(t, w, http.StatusNotFound, "Not found")
}

func TestLogin_OversizedBody(t *testing.T) {
	env := newTestEnv(t)

	body := `{"email":"a@x.com","password":"` + strings.Repeat("p", maxJSONBodyBytes+10) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)

	assertError(t, rec, http.StatusRequestEntityTooLarge, "")
}
