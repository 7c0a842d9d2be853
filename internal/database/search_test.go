// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"testing"

	"github.com/tomtom215/trickortreat/internal/models"
)

// seedSearchFixtures creates four providers around (40, -74):
// at the origin, ~3.3 km north, ~11.1 km north, and one with no coordinate.
func seedSearchFixtures(t *testing.T, db *DB) {
	t.Helper()
	fixtures := []models.ProviderFields{
		{Location: models.Location{Address: "origin", Latitude: floatPtr(40.0), Longitude: floatPtr(-74.0)},
			TreatsProvided: "Chocolate bars", HauntedHouse: true},
		{Location: models.Location{Address: "near", Latitude: floatPtr(40.03), Longitude: floatPtr(-74.0)},
			TreatsProvided: "Gummies"},
		{Location: models.Location{Address: "far", Latitude: floatPtr(40.1), Longitude: floatPtr(-74.0)},
			TreatsProvided: "Dark chocolate", HauntedHouse: true},
		{TreatsProvided: "Apples", HauntedHouse: true},
	}
	for i, f := range fixtures {
		seedProvider(t, db, string(rune('a'+i))+"@x.com", f)
	}
}

func TestSearchProviders(t *testing.T) {
	db := setupTestDB(t)
	seedSearchFixtures(t, db)
	ctx := context.Background()
	origin := &models.Origin{Latitude: 40.0, Longitude: -74.0}

	tests := []struct {
		name      string
		params    models.SearchParams
		wantAddrs []string
	}{
		{
			name:      "no filters sorts by id",
			params:    models.SearchParams{Page: 1, Limit: 10},
			wantAddrs: []string{"origin", "near", "far", ""},
		},
		{
			name:      "radius 5 keeps close rows",
			params:    models.SearchParams{Origin: origin, Radius: 5, Page: 1, Limit: 10},
			wantAddrs: []string{"origin", "near"},
		},
		{
			name:      "default radius excludes rows past 10km",
			params:    models.SearchParams{Origin: origin, Page: 1, Limit: 10},
			wantAddrs: []string{"origin", "near"},
		},
		{
			name:      "distance desc",
			params:    models.SearchParams{Origin: origin, Radius: 50, SortBy: "distance", SortOrder: "desc", Page: 1, Limit: 10},
			wantAddrs: []string{"far", "near", "origin"},
		},
		{
			name:      "haunted only",
			params:    models.SearchParams{HauntedHouse: boolPtr(true), Page: 1, Limit: 10},
			wantAddrs: []string{"origin", "far", ""},
		},
		{
			name:      "treats is case-insensitive",
			params:    models.SearchParams{Treats: "CHOC", Page: 1, Limit: 10},
			wantAddrs: []string{"origin", "far"},
		},
		{
			name:      "sort by treats desc",
			params:    models.SearchParams{SortBy: "treats", SortOrder: "desc", Page: 1, Limit: 10},
			wantAddrs: []string{"near", "far", "origin", ""},
		},
		{
			name:      "second page",
			params:    models.SearchParams{Page: 2, Limit: 3},
			wantAddrs: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			res, err := db.SearchProviders(ctx, &params)
			if err != nil {
				t.Fatalf("SearchProviders failed: %v", err)
			}
			if res.TotalRecords != 4 {
				t.Errorf("totalRecords must count the whole table: got %d, want 4", res.TotalRecords)
			}
			if len(res.Data) != len(tt.wantAddrs) {
				t.Fatalf("got %d rows, want %d: %+v", len(res.Data), len(tt.wantAddrs), res.Data)
			}
			for i, want := range tt.wantAddrs {
				if res.Data[i].Address != want {
					t.Errorf("row %d address = %q, want %q", i, res.Data[i].Address, want)
				}
			}
		})
	}
}

func TestSearchProviders_DistanceProperties(t *testing.T) {
	db := setupTestDB(t)
	seedSearchFixtures(t, db)

	params := models.SearchParams{Origin: &models.Origin{Latitude: 40.0, Longitude: -74.0}, Radius: 5, Page: 1, Limit: 10}
	res, err := db.SearchProviders(context.Background(), &params)
	if err != nil {
		t.Fatalf("SearchProviders failed: %v", err)
	}
	for _, row := range res.Data {
		if row.Distance == nil {
			t.Fatalf("expected distance on %q", row.Address)
		}
		if *row.Distance >= 5 {
			t.Errorf("row %q distance %.3f not below radius", row.Address, *row.Distance)
		}
	}
	// acos near 1 loses precision, so the origin row lands within a metre rather than at zero
	if d := *res.Data[0].Distance; d > 1e-3 {
		t.Errorf("expected near-zero distance at origin, got %f", d)
	}

	plain := models.SearchParams{Page: 1, Limit: 10}
	res, err = db.SearchProviders(context.Background(), &plain)
	if err != nil {
		t.Fatalf("SearchProviders failed: %v", err)
	}
	for _, row := range res.Data {
		if row.Distance != nil {
			t.Errorf("distance should be absent without an address, got %f", *row.Distance)
		}
	}
}

func TestSearchProviders_TotalPages(t *testing.T) {
	db := setupTestDB(t)
	seedSearchFixtures(t, db)

	params := models.SearchParams{HauntedHouse: boolPtr(false), Page: 1, Limit: 3}
	res, err := db.SearchProviders(context.Background(), &params)
	if err != nil {
		t.Fatalf("SearchProviders failed: %v", err)
	}
	if res.TotalPages != 2 {
		t.Errorf("expected ceil(4/3)=2 pages, got %d", res.TotalPages)
	}
	for _, row := range res.Data {
		if row.HauntedHouse {
			t.Errorf("row %q should not be haunted", row.Address)
		}
	}
}
