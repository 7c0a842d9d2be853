// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package models

// Sort keys accepted by the filter endpoint.
const (
	SortByTreats       = "treats"
	SortByHauntedHouse = "hauntedhouse"
	SortByDistance     = "distance"
)

// Origin is the geocoded point distances are measured from.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// SearchParams holds the normalized filter endpoint parameters. Origin is nil
// unless an address was supplied and geocoded.
type SearchParams struct {
	Origin       *Origin
	HauntedHouse *bool
	Treats       string
	SortBy       string
	SortOrder    string
	Radius       float64
	Page         int
	Limit        int
}

// SearchResponse is the filter endpoint reply. TotalRecords counts every
// provider regardless of filters.
type SearchResponse struct {
	Data         []Provider `json:"data"`
	TotalRecords int64      `json:"totalRecords"`
	TotalPages   int64      `json:"totalPages"`
}
