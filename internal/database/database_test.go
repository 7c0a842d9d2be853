// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent CGO calls
// from many in-memory databases can hang under CI resource pressure, so the
// slot is held for the whole test and released by t.Cleanup.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database with timeout protection.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Driver:    DriverDuckDB,
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   1,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Failed to close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

// createTestUser inserts a user with a throwaway hash.
func createTestUser(t *testing.T, db *DB, email string, withProvider bool) *models.User {
	t.Helper()
	user, err := db.CreateUser(context.Background(), email, "$2a$04$hash", withProvider)
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

func countRows(t *testing.T, db *DB, query string, args ...interface{}) int {
	t.Helper()
	var n int
	if err := db.Conn().Get(&n, db.rebind(query), args...); err != nil {
		t.Fatalf("count query %q failed: %v", query, err)
	}
	return n
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestNew_AppliesMigrations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	version, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion failed: %v", err)
	}
	if want := len(db.getMigrations()); version != want {
		t.Errorf("expected schema version %d, got %d", want, version)
	}

	history, err := db.GetMigrationHistory(ctx)
	if err != nil {
		t.Fatalf("GetMigrationHistory failed: %v", err)
	}
	if len(history) != len(db.getMigrations()) {
		t.Errorf("expected %d migrations in history, got %d", len(db.getMigrations()), len(history))
	}
	if len(history) > 0 && history[0].AppliedAt.IsZero() {
		t.Error("expected applied_at to be populated")
	}

	// Re-running is a no-op.
	if err := db.runVersionedMigrations(); err != nil {
		t.Errorf("second migration run failed: %v", err)
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := New(&config.DatabaseConfig{Driver: "sqlite"})
	if err == nil || !strings.Contains(err.Error(), "unsupported database driver") {
		t.Errorf("expected unsupported driver error, got %v", err)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if db.Driver() != DriverDuckDB {
		t.Errorf("expected duckdb driver, got %s", db.Driver())
	}
}

func TestDuckDBConnString(t *testing.T) {
	t.Parallel()

	got := duckDBConnString(&config.DatabaseConfig{Path: "/data/tot.duckdb", Threads: 2, MaxMemory: "256MB"})
	want := "/data/tot.duckdb?access_mode=read_write&threads=2&max_memory=256MB"
	if got != want {
		t.Errorf("duckDBConnString() = %q, want %q", got, want)
	}
}
