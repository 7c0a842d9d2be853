// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package geocode

import (
	"context"
	"errors"
)

// ErrNoMatch is returned when the geocoding service finds no feature for
// the address. Callers treat it as a client error.
var ErrNoMatch = errors.New("no geocoding match")

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	// ForwardGeocode returns the best match for address, ErrNoMatch when
	// there is none, or another error when the service failed.
	ForwardGeocode(ctx context.Context, address string) (*Coordinate, error)
}
