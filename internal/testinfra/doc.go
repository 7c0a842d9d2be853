// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package testinfra starts throwaway Docker containers for integration tests.
//
// The container helpers carry the integration build tag and only compile with
//
//	go test -tags integration ./...
//
// # PostgreSQL Container
//
//	func TestSomething(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    db, err := database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
//	    // ...
//	}
//
// Tests skip instead of failing when no Docker daemon is reachable.
package testinfra
