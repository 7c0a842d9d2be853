// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// Used for RequestID, PrometheusMetrics and AccessLog.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(chiMiddleware(middleware.RequestID))         // X-Request-ID in and out, logging context
	r.Use(chimiddleware.RealIP)                        // Extract real IP from X-Forwarded-For
	r.Use(chiMiddleware(middleware.AccessLog))         // One structured line per request
	r.Use(chimiddleware.Recoverer)                     // Recover from panics
	r.Use(router.chiMiddleware.CORS())                 // CORS must be global to handle OPTIONS preflight
	r.Use(auth.SecurityHeaders)                        // nosniff, frame and referrer headers
	r.Use(chiMiddleware(middleware.PrometheusMetrics)) // Request count, latency, in-flight

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteNotFound(w, req, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	if h.servesPhotos() {
		r.Get("/photos/{publicId}", h.ServePhoto)
	}

	// ========================
	// Account Endpoints
	// ========================
	r.Route("/users", func(r chi.Router) {
		r.With(router.chiMiddleware.RateLimitSignup()).Post("/signup", h.Signup)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			router.useCaller(r)
			r.Get("/users", h.ListUsers)
			r.Put("/user/treatprovider", h.SetProviderStatus)
			r.Delete("/users/{userId}", h.DeleteUser)
			r.Put("/change-password/{userId}", h.ChangePassword)
		})
	})

	// ========================
	// Provider Endpoints
	// ========================
	r.Route("/treatproviders", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Get("/treatproviders", h.ListProviders)
		r.Get("/treatproviders/{id}", h.GetProvider)
		r.Get("/treatprovidersfilter", h.SearchProviders)

		r.Group(func(r chi.Router) {
			router.useCaller(r)
			r.Post("/treatproviders", h.CreateProvider)
			r.Put("/treatproviders", h.UpdateProvider)
		})
	})

	// ========================
	// Bookmark Endpoints
	// ========================
	r.Route("/savedhouses", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		router.useCaller(r)
		r.Post("/savedhouses", h.SaveHouse)
		r.Get("/savedhouses", h.ListSavedHouses)
		r.Delete("/savedhouses/{treatProviderId}", h.DeleteSavedHouse)
	})

	return r
}

// useCaller installs bearer authentication and, when configured, the casbin
// check on a route group.
func (router *Router) useCaller(r chi.Router) {
	r.Use(router.authn.Authenticate)
	if router.authz != nil {
		r.Use(router.authz.Authorize)
	}
}

// routePattern returns the matched chi pattern, or "unmatched" so raw paths
// never become label values.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
