// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// initialize creates tables and applies pending migrations.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	return db.runVersionedMigrations()
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", firstLine(query), err)
		}
	}
	return nil
}

// idColumn returns the auto-increment primary key definition for the driver.
// DuckDB has no SERIAL type, so ids come from a named sequence.
func (db *DB) idColumn(name, sequence string) string {
	if db.driver == DriverPostgres {
		return name + " BIGSERIAL PRIMARY KEY"
	}
	return fmt.Sprintf("%s BIGINT PRIMARY KEY DEFAULT nextval('%s')", name, sequence)
}

// sequenceColumn returns a non-key auto-increment column. It records
// insertion order.
func (db *DB) sequenceColumn(name, sequence string) string {
	if db.driver == DriverPostgres {
		return name + " BIGSERIAL"
	}
	return fmt.Sprintf("%s BIGINT NOT NULL DEFAULT nextval('%s')", name, sequence)
}

// references returns a foreign key clause on Postgres. DuckDB rejects deleting
// a parent row and its children in one transaction, so referential integrity
// is kept by the explicit cascades in the write paths instead.
func (db *DB) references(target, action string) string {
	if db.driver != DriverPostgres {
		return ""
	}
	return fmt.Sprintf(" REFERENCES %s ON DELETE %s", target, action)
}

// getTableCreationQueries returns the DDL statements in dependency order.
func (db *DB) getTableCreationQueries() []string {
	var queries []string
	if db.driver != DriverPostgres {
		queries = append(queries,
			`CREATE SEQUENCE IF NOT EXISTS treat_providers_id_seq START 1`,
			`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
			`CREATE SEQUENCE IF NOT EXISTS treat_provider_photos_id_seq START 1`,
			`CREATE SEQUENCE IF NOT EXISTS saved_houses_id_seq START 1`,
		)
	}

	queries = append(queries,
		`CREATE TABLE IF NOT EXISTS treat_providers (
			`+db.idColumn("treatproviderid", "treat_providers_id_seq")+`,
			address VARCHAR NOT NULL DEFAULT '',
			treatsprovided VARCHAR NOT NULL DEFAULT '',
			hours VARCHAR NOT NULL DEFAULT '',
			hauntedhouse BOOLEAN NOT NULL DEFAULT FALSE,
			description VARCHAR,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			createdat TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK ((latitude IS NULL) = (longitude IS NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			`+db.idColumn("userid", "users_id_seq")+`,
			email VARCHAR NOT NULL UNIQUE,
			passwordhash VARCHAR NOT NULL,
			treatproviderid BIGINT UNIQUE`+db.references("treat_providers(treatproviderid)", "SET NULL")+`,
			createdat TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS saved_houses (
			`+db.sequenceColumn("savedid", "saved_houses_id_seq")+`,
			userid BIGINT NOT NULL`+db.references("users(userid)", "CASCADE")+`,
			treatproviderid BIGINT NOT NULL`+db.references("treat_providers(treatproviderid)", "CASCADE")+`,
			createdat TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (userid, treatproviderid)
		)`,
		`CREATE TABLE IF NOT EXISTS treat_provider_photos (
			`+db.idColumn("photoid", "treat_provider_photos_id_seq")+`,
			treatproviderid BIGINT NOT NULL`+db.references("treat_providers(treatproviderid)", "CASCADE")+`,
			photourl VARCHAR NOT NULL,
			description VARCHAR,
			createdat TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	)
	return queries
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
