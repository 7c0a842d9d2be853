// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package middleware

import (
	"net/http"
	"regexp"

	"github.com/tomtom215/trickortreat/internal/logging"
)

// RequestIDHeader is the header used to carry request IDs in and out.
const RequestIDHeader = "X-Request-ID"

// validRequestID limits accepted upstream IDs to a safe, loggable shape.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID reuses a well-formed upstream X-Request-ID or generates a new one,
// echoes it on the response and stores it in the logging context.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID.MatchString(requestID) {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next(w, r.WithContext(ctx))
	}
}
