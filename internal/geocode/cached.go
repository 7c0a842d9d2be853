// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/trickortreat/internal/cache"
	"github.com/tomtom215/trickortreat/internal/metrics"
)

// CachingGeocoder remembers successful lookups from another Geocoder.
// Misses and failures are never cached.
type CachingGeocoder struct {
	next  Geocoder
	cache *cache.LRU[Coordinate]
}

// NewCachingGeocoder wraps next with an LRU of size entries that live for ttl.
func NewCachingGeocoder(next Geocoder, size int, ttl time.Duration) *CachingGeocoder {
	return &CachingGeocoder{
		next:  next,
		cache: cache.NewLRU[Coordinate](size, ttl),
	}
}

// ForwardGeocode serves address from the cache or delegates to the wrapped geocoder.
func (g *CachingGeocoder) ForwardGeocode(ctx context.Context, address string) (*Coordinate, error) {
	key := cacheKey(address)
	if key == "" {
		return g.next.ForwardGeocode(ctx, address)
	}

	if coord, ok := g.cache.Get(key); ok {
		metrics.RecordGeocodeCache(true)
		return &coord, nil
	}
	metrics.RecordGeocodeCache(false)

	coord, err := g.next.ForwardGeocode(ctx, address)
	if err != nil {
		return nil, err
	}
	g.cache.Add(key, *coord)
	return coord, nil
}

// cacheKey folds case and whitespace so "1 Main St" and " 1  main st" share an entry.
func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
