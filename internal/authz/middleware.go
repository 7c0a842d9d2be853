// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package authz

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/models"
)

// OwnerParam is the route parameter compared against the caller for "self"
// scoped rules.
const OwnerParam = "userId"

// CodeForbidden is the error code of a denied request.
const CodeForbidden = "FORBIDDEN"

// Middleware provides authorization middleware using Casbin.
type Middleware struct {
	enforcer *Enforcer
}

// NewMiddleware creates a new authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{enforcer: enforcer}
}

// RolesFor returns the roles held by the token's owner.
func RolesFor(claims *auth.Claims) []string {
	if claims.HasProvider() {
		return []string{RoleProvider, RoleMember}
	}
	return []string{RoleMember}
}

// Authorize checks the request path and method against the policy. It must
// run after auth.Middleware.Authenticate on routes that are already matched,
// so URL parameters are available.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeForbidden(w, r, "Forbidden: no authentication context")
			return
		}

		start := time.Now()
		req := Request{
			Object:  r.URL.Path,
			Action:  r.Method,
			Subject: strconv.FormatInt(claims.UserID, 10),
			Owner:   chi.URLParam(r, OwnerParam),
			Roles:   RolesFor(claims),
		}
		allowed, err := m.enforcer.Enforce(req)
		RecordDecision(routePattern(r), r.Method, allowed, time.Since(start))

		if err != nil {
			logging.CtxErr(r.Context(), err).Msg("Authorization error")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{
				Error:     "Internal server error",
				Code:      "INTERNAL_ERROR",
				RequestID: logging.RequestIDFromContext(r.Context()),
			})
			return
		}

		if !allowed {
			logging.Ctx(r.Context()).Info().
				Str("path", req.Object).
				Str("method", req.Action).
				Str("owner", req.Owner).
				Msg("Authorization denied")
			writeForbidden(w, r, "Forbidden: insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// routePattern returns the matched chi pattern, which keeps metric labels
// bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func writeForbidden(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	if err := json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:     message,
		Code:      CodeForbidden,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to encode authorization error")
	}
}
