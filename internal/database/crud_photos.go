// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/trickortreat/internal/models"
)

const photoColumns = "photoid, treatproviderid, photourl, description, createdat"

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	Rebind(string) string
}

// photosFor loads the photos of the given providers keyed by provider id,
// each list in insertion order.
func photosFor(ctx context.Context, q queryer, providerIDs []int64) (map[int64][]models.Photo, error) {
	byProvider := make(map[int64][]models.Photo, len(providerIDs))
	if len(providerIDs) == 0 {
		return byProvider, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+photoColumns+` FROM treat_provider_photos WHERE treatproviderid IN (?) ORDER BY photoid`,
		providerIDs)
	if err != nil {
		return nil, fmt.Errorf("build photo query: %w", err)
	}

	start := time.Now()
	var photos []models.Photo
	err = sqlx.SelectContext(ctx, q, &photos, q.Rebind(query), args...)
	if err := observe("select", "treat_provider_photos", start, err); err != nil {
		return nil, classify("select photos", err)
	}

	for _, p := range photos {
		byProvider[p.ProviderID] = append(byProvider[p.ProviderID], p)
	}
	return byProvider, nil
}

// attachPhotos fills the Photos field of each provider. Providers without
// photos get an empty, non-nil slice so they serialize as [].
func attachPhotos(ctx context.Context, q queryer, providers []models.Provider) error {
	ids := make([]int64, len(providers))
	for i := range providers {
		ids[i] = providers[i].ID
	}
	byProvider, err := photosFor(ctx, q, ids)
	if err != nil {
		return err
	}
	for i := range providers {
		photos := byProvider[providers[i].ID]
		if photos == nil {
			photos = []models.Photo{}
		}
		providers[i].Photos = photos
	}
	return nil
}

// insertPhotos inserts photo rows for a provider and returns them with ids.
func insertPhotos(ctx context.Context, tx *sqlx.Tx, providerID int64, photos []models.NewPhoto) ([]models.Photo, error) {
	inserted := make([]models.Photo, 0, len(photos))
	query := tx.Rebind(`INSERT INTO treat_provider_photos (treatproviderid, photourl, description)
		VALUES (?, ?, ?) RETURNING ` + photoColumns)

	for _, p := range photos {
		start := time.Now()
		var row models.Photo
		err := tx.GetContext(ctx, &row, query, providerID, p.URL, nullable(p.Description))
		if err := observe("insert", "treat_provider_photos", start, err); err != nil {
			return nil, classify("insert photo", err)
		}
		inserted = append(inserted, row)
	}
	return inserted, nil
}

// deletePhotos removes every photo row of a provider and returns the removed
// rows so their media can be destroyed.
func deletePhotos(ctx context.Context, tx *sqlx.Tx, providerID int64) ([]models.Photo, error) {
	byProvider, err := photosFor(ctx, tx, []int64{providerID})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	_, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM treat_provider_photos WHERE treatproviderid = ?`), providerID)
	if err := observe("delete", "treat_provider_photos", start, err); err != nil {
		return nil, classify("delete photos", err)
	}
	return byProvider[providerID], nil
}

// deleteProviderCascade removes a provider together with its photos and
// every bookmark pointing at it. It returns the removed photos.
func deleteProviderCascade(ctx context.Context, tx *sqlx.Tx, providerID int64) ([]models.Photo, error) {
	start := time.Now()
	_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM saved_houses WHERE treatproviderid = ?`), providerID)
	if err := observe("delete", "saved_houses", start, err); err != nil {
		return nil, classify("delete provider bookmarks", err)
	}

	removed, err := deletePhotos(ctx, tx, providerID)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	_, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM treat_providers WHERE treatproviderid = ?`), providerID)
	if err := observe("delete", "treat_providers", start, err); err != nil {
		return nil, classify("delete provider", err)
	}
	return removed, nil
}
