// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package resilience wraps sony/gobreaker circuit breakers around calls to
// external services (the geocoder and the Cloudinary photo store).
//
// Every breaker exports its state, request outcomes, consecutive failures
// and state transitions through the circuit_breaker_* Prometheus metrics.
// There are no automatic retries: a failed or rejected call is returned to
// the caller, which aborts the enclosing request.
package resilience
