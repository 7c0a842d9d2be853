// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package geocode resolves provider addresses to coordinates.
//
// MapboxClient calls the Mapbox forward geocoding API once per lookup:
//
//   - golang.org/x/time/rate throttles outbound calls (GEOCODER_RATE_LIMIT)
//   - a resilience circuit breaker stops calling a failing service; a
//     "no match" reply does not count as a failure
//   - tidwall/gjson reads features[0].center without decoding the reply
//
// ErrNoMatch means the address was understood but not found; handlers turn it
// into 400 "Invalid address or geocoding failed". Any other error is a
// service failure. There are no automatic retries.
//
// CachingGeocoder optionally sits in front of any Geocoder and remembers
// successful lookups (GEOCODER_CACHE_SIZE > 0).
package geocode
