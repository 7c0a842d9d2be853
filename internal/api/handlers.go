// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"time"

	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/database"
	"github.com/tomtom215/trickortreat/internal/geocode"
	"github.com/tomtom215/trickortreat/internal/photos"
)

// photoBlobReader is implemented by photo stores that keep the image bytes
// themselves and can serve them back.
type photoBlobReader interface {
	Get(ctx context.Context, publicID string) (*photos.Blob, error)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: request decoding and parameter helpers
//   - handlers_health.go: health endpoint
//   - handlers_users.go: signup, login and account endpoints
//   - handlers_providers.go: provider profile endpoints
//   - handlers_search.go: provider filter/search endpoint
//   - handlers_saved_houses.go: bookmark endpoints
//   - handlers_photos.go: photo bytes for the badger backend
type Handler struct {
	db         *database.DB
	geocoder   geocode.Geocoder
	photos     photos.Store
	config     *config.Config
	jwtManager *auth.JWTManager
	hasher     *auth.PasswordHasher
	startTime  time.Time
	version    string
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - db: data access for users, providers, photos and bookmarks
//   - geocoder: forward geocoding for provider addresses and search
//   - store: photo media storage used by profile edits
//   - cfg: application configuration (page sizes, password policy, photo limits)
//   - jwtManager: token issuing for signup and login
//
// Example:
//
//	handler := api.NewHandler(db, geocoder, photoStore, cfg, jwtManager)
//	router := api.NewRouter(handler, chiMiddleware, authn, authz)
//	http.ListenAndServe(":3001", router.SetupChi())
func NewHandler(db *database.DB, geocoder geocode.Geocoder, store photos.Store, cfg *config.Config, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		db:         db,
		geocoder:   geocoder,
		photos:     store,
		config:     cfg,
		jwtManager: jwtManager,
		hasher:     auth.NewPasswordHasher(cfg.Security.BcryptCost),
		startTime:  time.Now(),
	}
}

// SetVersion sets the build version reported by the health endpoint.
func (h *Handler) SetVersion(version string) {
	h.version = version
}

// servesPhotos reports whether the photo store can serve stored bytes.
func (h *Handler) servesPhotos() bool {
	_, ok := h.photos.(photoBlobReader)
	return ok
}
