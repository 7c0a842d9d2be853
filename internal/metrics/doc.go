// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package metrics provides Prometheus metrics collection and export.

Collectors are registered with promauto on the default registry and exposed
at /metrics by the API router:

	curl http://localhost:3001/metrics

# Available Metrics

HTTP:
  - trickortreat_api_requests_total{method,endpoint,status_code}
  - trickortreat_api_request_duration_seconds{method,endpoint}
  - trickortreat_api_active_requests
  - trickortreat_api_rate_limit_hits_total{endpoint}

Database:
  - trickortreat_db_query_duration_seconds{operation,table}
  - trickortreat_db_query_errors_total{operation,table,error_type}
  - trickortreat_db_transactions_total{name,outcome}

Integrations:
  - trickortreat_geocode_requests_total{result}
  - trickortreat_geocode_duration_seconds
  - trickortreat_photo_operations_total{backend,operation,result}
  - trickortreat_photo_upload_bytes{backend}
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Accounts:
  - trickortreat_auth_events_total{event,result}

Endpoint labels use the chi route pattern (/treatproviders/{id}), never the
raw path, so label cardinality stays bounded.
*/
package metrics
