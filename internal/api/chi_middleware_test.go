// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/models"
)

// =====================================================
// ChiMiddleware Configuration Tests
// =====================================================

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)

	if m == nil {
		t.Fatal("NewChiMiddleware returned nil")
	}
	if len(m.config.CORSAllowedOrigins) != 0 {
		t.Errorf("CORSAllowedOrigins = %v, want []", m.config.CORSAllowedOrigins)
	}
	if m.config.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want 86400", m.config.CORSMaxAge)
	}
	if m.config.RateLimitOnLimit == nil {
		t.Error("RateLimitOnLimit should default to the JSON 429 handler")
	}
}

func TestNewChiMiddlewareFromConfig(t *testing.T) {
	m := NewChiMiddlewareFromConfig(&config.SecurityConfig{
		CORSOrigins:     []string{"https://treats.example.com", "https://other.example.com"},
		RateLimitReqs:   200,
		RateLimitWindow: 2 * time.Minute,
	})

	if len(m.config.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins length = %d, want 2", len(m.config.CORSAllowedOrigins))
	}
	if m.config.RateLimitRequests != 200 {
		t.Errorf("RateLimitRequests = %d, want 200", m.config.RateLimitRequests)
	}
	if m.config.RateLimitWindow != 2*time.Minute {
		t.Errorf("RateLimitWindow = %v, want 2m", m.config.RateLimitWindow)
	}
	if m.config.RateLimitDisabled {
		t.Error("RateLimitDisabled should be false")
	}
}

// =====================================================
// CORS Middleware Tests
// =====================================================

func TestChiMiddleware_CORS_SpecificOrigin(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://allowed.com"}
	m := NewChiMiddleware(cfg)

	handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{"allowed", "https://allowed.com", "https://allowed.com"},
		{"disallowed", "https://evil.com", ""},
		{"no origin", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestChiMiddleware_CORS_PreflightThroughRouter(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/treatproviders/treatproviders", nil)
	req.Header.Set("Origin", "https://treats.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	env.server.ServeHTTP(w, req)

	if w.Code != http.StatusOK && w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 200 or 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://treats.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Access-Control-Allow-Methods should be set")
	}
}

// =====================================================
// Rate Limit Middleware Tests
// =====================================================

func TestChiMiddleware_RateLimit_Disabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitDisabled: true,
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})

	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestChiMiddleware_RateLimit_Enabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 3,
		RateLimitWindow:   time.Minute,
	})

	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	successCount := 0
	var limited *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			limited = w
		}
	}

	if successCount != 3 {
		t.Errorf("successCount = %d, want 3", successCount)
	}
	if limited == nil {
		t.Fatal("expected a throttled request")
	}
	body := decodeBody[models.ErrorResponse](t, limited)
	if body.Code != ErrCodeTooManyRequests {
		t.Errorf("code = %q, want %q", body.Code, ErrCodeTooManyRequests)
	}
}

func TestChiMiddleware_RateLimit_DifferentIPs(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})

	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000", "10.0.0.3:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", addr, w.Code)
		}
	}
}

func TestChiMiddleware_RateLimitLogin_Strict(t *testing.T) {
	m := NewChiMiddleware(DefaultChiMiddlewareConfig())

	handler := m.RateLimitLogin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i <= RateLimitLogin.Requests; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = "172.16.0.9:4321"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("attempt %d: status = %d, want 429", RateLimitLogin.Requests+1, last)
	}
}
