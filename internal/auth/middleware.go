// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/models"
)

type contextKey string

// ClaimsContextKey holds the verified *Claims of the caller.
const ClaimsContextKey contextKey = "claims"

// Error codes written by the middleware.
const (
	CodeMissingToken = "AUTH_MISSING_TOKEN"
	CodeInvalidToken = "AUTH_INVALID_TOKEN"
)

// Middleware verifies bearer tokens on protected routes.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate rejects requests without a valid "Authorization: Bearer"
// token with 401. On success the claims are stored in the request context
// and the user id is added to every log line for the request.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r.Header.Get("Authorization"))
		if !ok {
			metrics.RecordAuthEvent("token", false)
			writeAuthError(w, r, "Access token required", CodeMissingToken)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			metrics.RecordAuthEvent("token", false)
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			writeAuthError(w, r, "Invalid or expired token", CodeInvalidToken)
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		ctx = logging.ContextWithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken returns the token from an Authorization header value.
func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// ContextWithClaims stores verified claims in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the caller's claims, if the request was
// authenticated.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

func writeAuthError(w http.ResponseWriter, r *http.Request, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="trickortreat"`)
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to encode auth error")
	}
}

// SecurityHeaders adds security headers to all responses. The API serves
// JSON and images only, so the content security policy denies everything
// else.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// HSTS only behind TLS
		if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
