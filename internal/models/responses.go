// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package models

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	TreatProviderID *int64 `json:"treatProviderId"`
	Token           string `json:"token"`
	Email           string `json:"email"`
	UserID          int64  `json:"userId"`
}

// ProviderStatusResponse is returned after opting in or out.
type ProviderStatusResponse struct {
	TreatProviderID *int64 `json:"treatProviderId"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse reports liveness and database reachability.
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	SchemaVersion int    `json:"schema_version,omitempty"`
	Version       string `json:"version,omitempty"`
	Uptime        string `json:"uptime,omitempty"`
}
