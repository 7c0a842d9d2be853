// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/trickortreat/internal/database"
	"github.com/tomtom215/trickortreat/internal/logging"
)

// Request decoding errors
var (
	errEmptyBody     = errors.New("request body is required")
	errBodyTooLarge  = errors.New("request body too large")
	errMalformedBody = errors.New("invalid JSON body")
	errInvalidID     = errors.New("invalid id")
)

// writeDecodeError answers a body that could not be decoded.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, errEmptyBody):
		rw.BadRequest("Request body is required")
	case errors.Is(err, errBodyTooLarge):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Request body too large")
	default:
		rw.BadRequest("Invalid JSON body")
	}
}

// storeErrorMessages overrides the client message for the sentinels a
// handler expects. Unlisted sentinels use their defaults.
type storeErrorMessages struct {
	notFound  string
	duplicate string
}

// writeStoreError maps a store error onto the HTTP taxonomy. Anything that
// is not a known sentinel is logged and answered with a generic 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, msgs storeErrorMessages) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(orDefault(msgs.notFound, "Not found"))
	case errors.Is(err, database.ErrNotProvider):
		rw.NotFound("User is not a treat provider")
	case errors.Is(err, database.ErrDuplicate):
		rw.Conflict(orDefault(msgs.duplicate, "Resource already exists"))
	case errors.Is(err, database.ErrConflict):
		rw.Conflict("The record was modified concurrently, please retry")
	case errors.Is(err, database.ErrUnavailable):
		logging.CtxErr(r.Context(), err).Msg("Database unavailable")
		rw.ServiceUnavailable("Database unavailable")
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request canceled by client")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled")
	default:
		rw.InternalError(err)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
