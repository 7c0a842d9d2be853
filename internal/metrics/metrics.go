// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package metrics

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trickortreat_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation", "table", "error_type"}, // error_type: no_rows, constraint, timeout, other
	)

	DBTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_db_transactions_total",
			Help: "Total number of database transactions by outcome",
		},
		[]string{"name", "outcome"}, // outcome: commit, rollback
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trickortreat_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trickortreat_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Account Metrics
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_auth_events_total",
			Help: "Account events (signup, login, password change) by result",
		},
		[]string{"event", "result"},
	)

	// Geocoder Metrics
	GeocodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_geocode_requests_total",
			Help: "Total number of forward geocoding lookups",
		},
		[]string{"result"}, // result: match, no_match, error
	)

	GeocodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trickortreat_geocode_duration_seconds",
			Help:    "Duration of geocoding API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	GeocodeCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_geocode_cache_total",
			Help: "Geocode cache lookups by result",
		},
		[]string{"result"}, // result: hit, miss
	)

	// Photo Storage Metrics
	PhotoOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trickortreat_photo_operations_total",
			Help: "Photo store operations by backend and result",
		},
		[]string{"backend", "operation", "result"}, // operation: upload, destroy, fetch
	)

	PhotoUploadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trickortreat_photo_upload_bytes",
			Help:    "Size of uploaded photos in bytes",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6),
		},
		[]string{"backend"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trickortreat_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trickortreat_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

// classifyDBError maps an error to a bounded label value.
func classifyDBError(err error) string {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "no_rows"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint error") {
		return "constraint"
	}
	return "other"
}

// RecordTransaction records the outcome of a named transaction.
func RecordTransaction(name string, committed bool) {
	outcome := "rollback"
	if committed {
		outcome = "commit"
	}
	DBTransactionsTotal.WithLabelValues(name, outcome).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAuthEvent records an account event such as "login" with result "success".
func RecordAuthEvent(event string, success bool) {
	AuthEventsTotal.WithLabelValues(event, resultLabel(success)).Inc()
}

// RecordGeocode records a geocoder lookup. result is match, no_match or error.
func RecordGeocode(result string, duration time.Duration) {
	GeocodeRequestsTotal.WithLabelValues(result).Inc()
	GeocodeDuration.Observe(duration.Seconds())
}

// RecordGeocodeCache records a geocode cache lookup.
func RecordGeocodeCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	GeocodeCacheTotal.WithLabelValues(result).Inc()
}

// RecordPhotoOperation records a photo store call.
func RecordPhotoOperation(backend, operation string, err error) {
	PhotoOperationsTotal.WithLabelValues(backend, operation, resultLabel(err == nil)).Inc()
}

// RecordPhotoUpload records the size of an accepted upload.
func RecordPhotoUpload(backend string, size int64) {
	PhotoUploadBytes.WithLabelValues(backend).Observe(float64(size))
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
