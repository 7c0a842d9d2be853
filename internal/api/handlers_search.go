// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/trickortreat/internal/database/query"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/models"
)

// SearchProviders filters, sorts and pages providers.
//
// Query parameters (all optional):
//   - address: geocoded origin; adds a distance column in km
//   - radius: km, only with address (default 10)
//   - hauntedhouse: "true" matches haunted houses, anything else non-haunted
//   - treats: case-insensitive substring of the treats text
//   - sortBy: treats, hauntedhouse or distance
//   - sortOrder: asc or desc
//   - page, limit: 1-based page and page size
//
// Method: GET
// Path: /treatproviders/treatprovidersfilter
func (h *Handler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	params := h.parseSearchParams(r)

	if address := strings.TrimSpace(r.URL.Query().Get("address")); address != "" {
		location, err := h.resolveAddress(r.Context(), address)
		if err != nil {
			writeGeocodeError(w, r, err)
			return
		}
		params.Origin = &models.Origin{Latitude: *location.Latitude, Longitude: *location.Longitude}
	}

	result, err := h.db.SearchProviders(r.Context(), params)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{})
		return
	}

	logging.Ctx(r.Context()).Debug().
		Bool("origin", params.Origin != nil).
		Int("results", len(result.Data)).
		Int("page", params.Page).
		Msg("Provider search")

	WriteSuccess(w, r, result)
}

// parseSearchParams reads every filter except the address, which needs the
// geocoder. Malformed numbers fall back to their defaults.
func (h *Handler) parseSearchParams(r *http.Request) *models.SearchParams {
	q := r.URL.Query()
	params := &models.SearchParams{
		Treats:    q.Get("treats"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Radius:    query.DefaultRadiusKm,
		Page:      getIntParam(r, "page", 1),
		Limit:     getIntParam(r, "limit", h.config.API.DefaultPageSize),
	}

	if raw := q.Get("radius"); raw != "" {
		if radius, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && radius > 0 {
			params.Radius = radius
		}
	}

	if q.Has("hauntedhouse") {
		haunted := strings.ToLower(q.Get("hauntedhouse")) == "true"
		params.HauntedHouse = &haunted
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = h.config.API.DefaultPageSize
	}
	if maxLimit := h.config.API.MaxPageSize; maxLimit > 0 && params.Limit > maxLimit {
		params.Limit = maxLimit
	}
	if maxPage := query.MaxOffset/params.Limit + 1; params.Page > maxPage {
		params.Page = maxPage
	}
	return params
}
