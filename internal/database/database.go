// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/logging"
)

// Supported drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

func init() {
	// sqlx does not know the duckdb driver name; it takes "?" placeholders.
	sqlx.BindDriver(DriverDuckDB, sqlx.QUESTION)
}

// DB wraps the SQL connection pool and provides data access methods.
// A *DB is created once at startup and passed explicitly to whoever needs it.
type DB struct {
	conn   *sqlx.DB
	cfg    *config.DatabaseConfig
	driver string
}

// New opens the configured database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverDuckDB
	}

	var dsn string
	switch driver {
	case DriverDuckDB:
		// Ensure parent directory exists for database file.
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		if cfg.Path != ":memory:" && cfg.Path != "" {
			dbDir := filepath.Dir(cfg.Path)
			if dbDir != "" && dbDir != "." {
				if err := os.MkdirAll(dbDir, 0o750); err != nil {
					return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
				}
			}
		}
		dsn = duckDBConnString(cfg)
	case DriverPostgres:
		dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg, driver: driver}
	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", driver).
		Msg("Database initialized")

	return db, nil
}

// NewWithConn wraps an existing connection without touching the schema.
// Tests use it with go-sqlmock.
func NewWithConn(conn *sql.DB, driver string) *DB {
	return &DB{
		conn:   sqlx.NewDb(conn, driver),
		cfg:    &config.DatabaseConfig{Driver: driver},
		driver: driver,
	}
}

// duckDBConnString builds the DuckDB DSN with tuning options.
func duckDBConnString(cfg *config.DatabaseConfig) string {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, maxMemory)
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

// Driver returns the active driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
