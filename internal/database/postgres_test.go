// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

//go:build integration

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/models"
	"github.com/tomtom215/trickortreat/internal/testinfra"
)

// postgresDSN returns TEST_POSTGRES_DSN when set, otherwise starts a
// throwaway container that is terminated when the test ends.
func postgresDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		return dsn
	}

	testinfra.SkipIfNoDocker(t)
	ctx := context.Background()
	pg, err := testinfra.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { testinfra.CleanupContainer(t, ctx, pg) })
	return pg.DSN
}

func TestPostgresIntegration(t *testing.T) {
	db, err := New(&config.DatabaseConfig{Driver: DriverPostgres, DSN: postgresDSN(t)})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer closeQuietly(db)

	ctx := context.Background()
	email := fmt.Sprintf("pg-%d@x.com", time.Now().UnixNano())

	user, err := db.CreateUser(ctx, email, "hash", true)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := db.CreateUser(ctx, email, "hash", false); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	provider, err := db.UpdateProvider(ctx, user.ID, &models.ProviderUpdate{
		Location:     &models.Location{Address: "pg", Latitude: floatPtr(10), Longitude: floatPtr(10)},
		HauntedHouse: boolPtr(true),
		Photos:       []models.NewPhoto{{URL: "https://img/pg.jpg"}},
	}, nil)
	if err != nil {
		t.Fatalf("update provider: %v", err)
	}

	params := models.SearchParams{Origin: &models.Origin{Latitude: 10, Longitude: 10}, Radius: 1, Page: 1, Limit: 50}
	res, err := db.SearchProviders(ctx, &params)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	found := false
	for _, row := range res.Data {
		if row.ID == provider.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected provider %d in radius search", provider.ID)
	}

	if _, err := db.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := db.GetProvider(ctx, provider.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected provider removed, got %v", err)
	}
}
