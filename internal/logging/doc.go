// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package logging provides centralized zerolog-based logging.
//
// The global logger is configured once from LoggingConfig in main and used
// through the package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Geocoding failed")
//
// Ctx adds the request ID set by the HTTP middleware and the authenticated
// user ID, when present. SlogHandler bridges slog-only libraries (the suture
// supervisor event hook) into the same zerolog stream.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
