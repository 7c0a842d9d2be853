// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/trickortreat/internal/models"
)

// SaveHouse bookmarks a provider for a user. An unknown provider returns
// ErrNotFound and an existing bookmark returns ErrDuplicate.
func (db *DB) SaveHouse(ctx context.Context, userID, providerID int64) error {
	return db.withTx(ctx, "save_house", func(tx *sqlx.Tx) error {
		start := time.Now()
		var exists int
		err := tx.GetContext(ctx, &exists,
			tx.Rebind(`SELECT COUNT(*) FROM treat_providers WHERE treatproviderid = ?`), providerID)
		if err := observe("select", "treat_providers", start, err); err != nil {
			return classify("check provider", err)
		}
		if exists == 0 {
			return classify("save house", ErrNotFound)
		}

		start = time.Now()
		_, err = tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO saved_houses (userid, treatproviderid) VALUES (?, ?)`), userID, providerID)
		if err := observe("insert", "saved_houses", start, err); err != nil {
			return classify("save house", err)
		}
		return nil
	})
}

// ListSavedHouses returns the providers a user bookmarked, with photos, in
// the order they were saved.
func (db *DB) ListSavedHouses(ctx context.Context, userID int64) ([]models.Provider, error) {
	start := time.Now()
	providers := []models.Provider{}
	err := db.conn.SelectContext(ctx, &providers, db.rebind(`
		SELECT tp.treatproviderid, tp.address, tp.treatsprovided, tp.hours, tp.hauntedhouse,
			tp.description, tp.latitude, tp.longitude
		FROM saved_houses sh
		JOIN treat_providers tp ON tp.treatproviderid = sh.treatproviderid
		WHERE sh.userid = ?
		ORDER BY sh.savedid`), userID)
	if err := observe("select", "saved_houses", start, err); err != nil {
		return nil, classify("list saved houses", err)
	}

	if err := attachPhotos(ctx, db.conn, providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// DeleteSavedHouse removes a bookmark. A missing bookmark returns ErrNotFound.
func (db *DB) DeleteSavedHouse(ctx context.Context, userID, providerID int64) error {
	return db.withTx(ctx, "delete_saved_house", func(tx *sqlx.Tx) error {
		start := time.Now()
		n, err := execAffected(ctx, tx,
			tx.Rebind(`DELETE FROM saved_houses WHERE userid = ? AND treatproviderid = ?`), userID, providerID)
		if err := observe("delete", "saved_houses", start, err); err != nil {
			return classify("delete saved house", err)
		}
		if n == 0 {
			return classify("delete saved house", ErrNotFound)
		}
		return nil
	})
}
