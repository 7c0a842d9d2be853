// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/trickortreat/internal/logging"
)

// Migration represents a versioned database migration.
type Migration struct {
	AppliedAt   time.Time `db:"applied_at"`  // When the migration was applied (populated on query)
	Name        string    `db:"name"`        // Human-readable migration name
	Description string    `db:"description"` // Description of what this migration does
	SQL         string    `db:"-"`           // SQL statement to execute
	Version     int       `db:"version"`     // Unique version number (monotonically increasing)
}

// schemaMigrationsTable creates the migration tracking table
const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name VARCHAR NOT NULL,
	description VARCHAR,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// getMigrations returns all versioned migrations in order.
// Migrations MUST be append-only: never modify or remove one that has shipped.
// Columns that handlers UPDATE are left unindexed; DuckDB rewrites updates of
// indexed columns as delete+insert.
func (db *DB) getMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "index_saved_houses_provider", Description: "Index bookmarks by provider for cascades",
			SQL: `CREATE INDEX IF NOT EXISTS idx_saved_houses_provider ON saved_houses (treatproviderid)`},
		{Version: 2, Name: "index_photos_provider", Description: "Index photos by provider",
			SQL: `CREATE INDEX IF NOT EXISTS idx_treat_provider_photos_provider ON treat_provider_photos (treatproviderid)`},
	}
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func (db *DB) createMigrationsTable(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, schemaMigrationsTable)
	return err
}

// getAppliedMigrations returns a map of version -> Migration for all applied migrations
func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	var rows []Migration
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT version, name, COALESCE(description, '') AS description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}

	applied := make(map[int]Migration, len(rows))
	for _, m := range rows {
		applied[m.Version] = m
	}
	return applied, nil
}

// runVersionedMigrations executes only new migrations that haven't been applied yet.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range db.getMigrations() {
		if _, exists := applied[m.Version]; exists {
			continue
		}

		if _, err := db.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}

		_, err := db.conn.ExecContext(ctx,
			db.conn.Rebind(`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`),
			m.Version, m.Name, m.Description)
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}

		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}

	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration version
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.conn.GetContext(ctx, &version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// GetMigrationHistory returns all applied migrations in order
func (db *DB) GetMigrationHistory(ctx context.Context) ([]Migration, error) {
	var history []Migration
	err := db.conn.SelectContext(ctx, &history,
		`SELECT version, name, COALESCE(description, '') AS description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	return history, nil
}
