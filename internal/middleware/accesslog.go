// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trickortreat/internal/logging"
)

// slowRequestThreshold promotes access log lines to warn level.
const slowRequestThreshold = 2 * time.Second

// AccessLog writes one structured line per request. 5xx responses log at
// error level and slow requests at warn level; everything else is debug.
func AccessLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := newStatusRecorder(w)

		next(wrapper, r)

		duration := time.Since(start)
		level := zerolog.DebugLevel
		switch {
		case wrapper.statusCode >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case duration > slowRequestThreshold:
			level = zerolog.WarnLevel
		}

		logging.Ctx(r.Context()).WithLevel(level).
			Str("method", r.Method).
			Str("route", routePattern(r)).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int("bytes", wrapper.bytes).
			Dur("duration", duration).
			Msg("HTTP request")
	}
}
