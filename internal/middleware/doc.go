// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package middleware provides infrastructure HTTP middleware: request ID
propagation, structured access logging and Prometheus instrumentation.

The functions use the http.HandlerFunc form; the API router adapts them to
chi's func(http.Handler) http.Handler with a small wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

PrometheusMetrics and AccessLog label requests with the matched chi route
pattern (for example /treatproviders/{id}) rather than the raw path.
*/
package middleware
