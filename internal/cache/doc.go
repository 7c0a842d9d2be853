// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package cache provides a thread-safe, size-bounded LRU cache with TTL expiry.

The geocoder uses it to remember address lookups so repeated searches for the
same origin address do not spend Mapbox quota.

# Characteristics

  - O(1) Get, Add and Remove using a map plus a doubly-linked list
  - Least recently used entry is evicted when capacity is reached
  - Entries expire lazily on Get once their TTL has passed
  - Hit and miss counters for metrics

# Usage

	c := cache.NewLRU[geocode.Coordinate](1000, 24*time.Hour)
	c.Add("1 main st", coord)
	if v, ok := c.Get("1 main st"); ok {
	    // use v
	}
*/
package cache
