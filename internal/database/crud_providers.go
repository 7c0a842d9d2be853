// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/trickortreat/internal/database/query"
	"github.com/tomtom215/trickortreat/internal/models"
)

// MediaDestroyer deletes the stored media of photos. UpdateProvider calls it
// inside the transaction; an error rolls the update back.
type MediaDestroyer func(ctx context.Context, photos []models.Photo) error

// CreateProvider inserts a fully populated provider with its photos and links
// it to the user, all in one transaction. A provider previously linked to the
// user is deleted with its photos and bookmarks and those photos are returned.
func (db *DB) CreateProvider(ctx context.Context, userID int64, fields models.ProviderFields, photos []models.NewPhoto) (*models.Provider, []models.Photo, error) {
	var (
		provider models.Provider
		replaced []models.Photo
	)
	err := db.withTx(ctx, "create_provider", func(tx *sqlx.Tx) error {
		previous, err := currentProviderID(ctx, tx, userID)
		if err != nil {
			return err
		}

		start := time.Now()
		err = tx.GetContext(ctx, &provider, tx.Rebind(`INSERT INTO treat_providers
			(address, treatsprovided, hours, hauntedhouse, description, latitude, longitude)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING `+query.ProviderColumns),
			fields.Location.Address, fields.TreatsProvided, fields.Hours, fields.HauntedHouse,
			nullable(fields.Description), nullable(fields.Location.Latitude), nullable(fields.Location.Longitude))
		if err := observe("insert", "treat_providers", start, err); err != nil {
			return classify("insert provider", err)
		}

		inserted, err := insertPhotos(ctx, tx, provider.ID, photos)
		if err != nil {
			return err
		}
		provider.Photos = inserted

		if err := setProviderLink(ctx, tx, userID, &provider.ID); err != nil {
			return err
		}

		if previous != nil {
			replaced, err = deleteProviderCascade(ctx, tx, *previous)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &provider, replaced, nil
}

// GetProvider returns one provider with its photos or ErrNotFound.
func (db *DB) GetProvider(ctx context.Context, providerID int64) (*models.Provider, error) {
	return getProvider(ctx, db.conn, providerID)
}

func getProvider(ctx context.Context, q queryer, providerID int64) (*models.Provider, error) {
	start := time.Now()
	var provider models.Provider
	err := sqlx.GetContext(ctx, q, &provider,
		q.Rebind(`SELECT `+query.ProviderColumns+` FROM treat_providers WHERE treatproviderid = ?`), providerID)
	if err := observe("select", "treat_providers", start, err); err != nil {
		return nil, classify("get provider", err)
	}

	providers := []models.Provider{provider}
	if err := attachPhotos(ctx, q, providers); err != nil {
		return nil, err
	}
	return &providers[0], nil
}

// ListProviders returns every provider with its photos, ordered by id.
func (db *DB) ListProviders(ctx context.Context) ([]models.Provider, error) {
	start := time.Now()
	providers := []models.Provider{}
	err := db.conn.SelectContext(ctx, &providers,
		`SELECT `+query.ProviderColumns+` FROM treat_providers ORDER BY treatproviderid`)
	if err := observe("select", "treat_providers", start, err); err != nil {
		return nil, classify("list providers", err)
	}

	if err := attachPhotos(ctx, db.conn, providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// UpdateProvider applies a profile edit to the user's linked provider. Only
// the non-nil fields of upd change. When upd.Photos is non-nil the existing
// photo rows are deleted, destroy is called with them, and the new rows are
// inserted. A user without a provider link returns ErrNotProvider.
func (db *DB) UpdateProvider(ctx context.Context, userID int64, upd *models.ProviderUpdate, destroy MediaDestroyer) (*models.Provider, error) {
	var provider *models.Provider
	err := db.withTx(ctx, "update_provider", func(tx *sqlx.Tx) error {
		providerID, err := currentProviderID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if providerID == nil {
			return classify("update provider", ErrNotProvider)
		}

		if err := updateProviderColumns(ctx, tx, *providerID, upd); err != nil {
			return err
		}

		if upd.Photos != nil {
			old, err := deletePhotos(ctx, tx, *providerID)
			if err != nil {
				return err
			}
			if destroy != nil && len(old) > 0 {
				if err := destroy(ctx, old); err != nil {
					return err
				}
			}
			if _, err := insertPhotos(ctx, tx, *providerID, upd.Photos); err != nil {
				return err
			}
		}

		provider, err = getProvider(ctx, tx, *providerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// updateProviderColumns writes the scalar fields of upd. Column names are
// fixed; only values are bound.
func updateProviderColumns(ctx context.Context, tx *sqlx.Tx, providerID int64, upd *models.ProviderUpdate) error {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if upd.TreatsProvided != nil {
		set("treatsprovided", *upd.TreatsProvided)
	}
	if upd.Hours != nil {
		set("hours", *upd.Hours)
	}
	if upd.HauntedHouse != nil {
		set("hauntedhouse", *upd.HauntedHouse)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if loc := upd.Location; loc != nil {
		set("address", loc.Address)
		set("latitude", nullable(loc.Latitude))
		set("longitude", nullable(loc.Longitude))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, providerID)
	start := time.Now()
	n, err := execAffected(ctx, tx,
		tx.Rebind(`UPDATE treat_providers SET `+strings.Join(sets, ", ")+` WHERE treatproviderid = ?`), args...)
	if err := observe("update", "treat_providers", start, err); err != nil {
		return classify("update provider", err)
	}
	if n == 0 {
		return classify("update provider", ErrNotFound)
	}
	return nil
}
