// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package database provides the credential and directory store.
//
// # Overview
//
// DB wraps a jmoiron/sqlx connection pool over either embedded DuckDB (the
// default) or PostgreSQL (lib/pq). All SQL is written with "?" placeholders
// and rebound for the active driver. A *DB is created once in main and passed
// to the HTTP handlers; there is no package-level connection.
//
// # Architecture
//
//   - database.go: lifecycle (open, pool, ping, close)
//   - database_connection.go: pool settings and connection error detection
//   - database_schema.go: dialect-aware table creation
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - tx.go: transaction helper with rollback on every error path
//   - errors.go: sentinel errors and driver error classification
//   - crud_users.go: signup, login lookup, provider opt in/out, account delete
//   - crud_providers.go: provider create, read, list and profile edit
//   - crud_photos.go: photo rows and the provider delete cascade
//   - crud_saved_houses.go: bookmarks
//   - search.go: the provider filter endpoint
//
// # Referential Integrity
//
// DuckDB does not implement ON DELETE actions, so every cascade (a user's
// bookmarks, a provider's photos and bookmarks) is executed explicitly inside
// the owning transaction. PostgreSQL additionally declares the foreign keys.
// Uniqueness (email, provider link, bookmark pair) is enforced by the engine
// and surfaces as ErrDuplicate.
//
// # Error Handling
//
// Store methods wrap one of ErrNotFound, ErrDuplicate, ErrNotProvider,
// ErrConflict or ErrUnavailable with %w. Callers use errors.Is.
//
// # Thread Safety
//
// DB is safe for concurrent use. Each multi-statement operation runs in its
// own transaction on one pooled connection.
package database
