// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/validation"
)

// maxJSONBodyBytes caps JSON request bodies.
const maxJSONBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeJSON reads a size-limited JSON body into dst. Keys match struct tags
// case-insensitively, so "treatsprovided" fills the treatsProvided field.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// decodeAndValidate decodes the body and runs struct validation. It writes
// the 400 response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeDecodeError(w, r, err)
		return false
	}
	if msg := validateRequest(dst); msg != "" {
		NewResponseWriter(w, r).ValidationError(msg)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator and
// returns the first failure message, or "" when the struct is valid.
func validateRequest(v interface{}) string {
	if err := validation.ValidateStruct(v); err != nil {
		return err.FirstMessage()
	}
	return ""
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	return intValue
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidID, name, sanitizeLogValue(raw))
	}
	return id, nil
}

// requireClaims returns the authenticated caller. Routes that call it sit
// behind auth.Middleware, so a miss is answered as unauthenticated.
func requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		NewResponseWriter(w, r).Unauthorized("Authentication required")
		return nil, false
	}
	return claims, true
}

// normalizeEmail trims and lowercases an address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
