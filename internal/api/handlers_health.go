// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/models"
)

// healthPingTimeout bounds the database ping.
const healthPingTimeout = 2 * time.Second

// Health reports whether the database answers.
//
// Method: GET
// Path: /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status, database, code := "healthy", "connected", http.StatusOK
	var schemaVersion int
	if h.db == nil {
		status, database, code = "degraded", "not configured", http.StatusServiceUnavailable
	} else if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Health check: database ping failed")
		status, database, code = "degraded", "disconnected", http.StatusServiceUnavailable
	} else if v, err := h.db.GetCurrentSchemaVersion(ctx); err == nil {
		schemaVersion = v
	}

	uptime := time.Since(h.startTime)
	metrics.AppUptime.Set(uptime.Seconds())

	NewResponseWriter(w, r).writeJSON(code, models.HealthResponse{
		Status:        status,
		Database:      database,
		SchemaVersion: schemaVersion,
		Version:       h.version,
		Uptime:        uptime.Truncate(time.Second).String(),
	})
}
