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

const userColumns = "userid, email, passwordhash, treatproviderid, createdat"

// CreateUser inserts a user, first creating a placeholder provider when
// withProvider is set. A taken email returns ErrDuplicate.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash string, withProvider bool) (*models.User, error) {
	var user models.User
	err := db.withTx(ctx, "signup", func(tx *sqlx.Tx) error {
		var providerID *int64
		if withProvider {
			id, err := insertPlaceholderProvider(ctx, tx)
			if err != nil {
				return err
			}
			providerID = &id
		}

		start := time.Now()
		err := tx.GetContext(ctx, &user, tx.Rebind(`INSERT INTO users (email, passwordhash, treatproviderid)
			VALUES (?, ?, ?) RETURNING `+userColumns), email, passwordHash, nullable(providerID))
		if err := observe("insert", "users", start, err); err != nil {
			return classify("insert user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// insertPlaceholderProvider creates an empty provider with no coordinate.
func insertPlaceholderProvider(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	start := time.Now()
	var id int64
	err := tx.GetContext(ctx, &id,
		`INSERT INTO treat_providers (address, treatsprovided, hours) VALUES ('', '', '') RETURNING treatproviderid`)
	if err := observe("insert", "treat_providers", start, err); err != nil {
		return 0, classify("insert placeholder provider", err)
	}
	return id, nil
}

// GetUserByEmail returns the user with the given email or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	var user models.User
	err := db.conn.GetContext(ctx, &user, db.rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	if err := observe("select", "users", start, err); err != nil {
		return nil, classify("get user by email", err)
	}
	return &user, nil
}

// GetUserByID returns the user with the given id or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	start := time.Now()
	var user models.User
	err := db.conn.GetContext(ctx, &user, db.rebind(`SELECT `+userColumns+` FROM users WHERE userid = ?`), userID)
	if err := observe("select", "users", start, err); err != nil {
		return nil, classify("get user", err)
	}
	return &user, nil
}

// ListUsers returns every user without password hashes, ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	start := time.Now()
	users := []models.UserSummary{}
	err := db.conn.SelectContext(ctx, &users, `SELECT userid, email, treatproviderid FROM users ORDER BY userid`)
	if err := observe("select", "users", start, err); err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

// UpdatePassword stores a new password hash. A missing user returns ErrNotFound.
func (db *DB) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	start := time.Now()
	n, err := execAffected(ctx, db.conn, db.rebind(`UPDATE users SET passwordhash = ? WHERE userid = ?`), passwordHash, userID)
	if err := observe("update", "users", start, err); err != nil {
		return classify("update password", err)
	}
	if n == 0 {
		return classify("update password", ErrNotFound)
	}
	return nil
}

// currentProviderID reads the live provider link of a user inside tx.
func currentProviderID(ctx context.Context, tx *sqlx.Tx, userID int64) (*int64, error) {
	start := time.Now()
	var providerID *int64
	err := tx.GetContext(ctx, &providerID, tx.Rebind(`SELECT treatproviderid FROM users WHERE userid = ?`), userID)
	if err := observe("select", "users", start, err); err != nil {
		return nil, classify("get provider link", err)
	}
	return providerID, nil
}

// setProviderLink points a user at providerID, or clears the link when nil.
func setProviderLink(ctx context.Context, tx *sqlx.Tx, userID int64, providerID *int64) error {
	start := time.Now()
	n, err := execAffected(ctx, tx, tx.Rebind(`UPDATE users SET treatproviderid = ? WHERE userid = ?`), nullable(providerID), userID)
	if err := observe("update", "users", start, err); err != nil {
		return classify("update provider link", err)
	}
	if n == 0 {
		return classify("update provider link", ErrNotFound)
	}
	return nil
}

// SetProviderStatus opts a user in or out of the provider role. Opting in
// creates a placeholder provider unless one is already linked. Opting out
// unlinks and deletes the provider with its photos and bookmarks; the removed
// photos are returned so their media can be destroyed.
func (db *DB) SetProviderStatus(ctx context.Context, userID int64, wantsProvider bool) (*int64, []models.Photo, error) {
	var (
		result  *int64
		removed []models.Photo
	)
	err := db.withTx(ctx, "provider_status", func(tx *sqlx.Tx) error {
		current, err := currentProviderID(ctx, tx, userID)
		if err != nil {
			return err
		}

		if wantsProvider {
			if current != nil {
				result = current
				return nil
			}
			id, err := insertPlaceholderProvider(ctx, tx)
			if err != nil {
				return err
			}
			result = &id
			return setProviderLink(ctx, tx, userID, result)
		}

		if current == nil {
			return nil
		}
		if err := setProviderLink(ctx, tx, userID, nil); err != nil {
			return err
		}
		removed, err = deleteProviderCascade(ctx, tx, *current)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return result, removed, nil
}

// DeleteUser removes a user and everything hanging off it: the user's
// bookmarks, then the linked provider's bookmarks, photos and row, then the
// user row. A missing user returns ErrNotFound and nothing changes.
func (db *DB) DeleteUser(ctx context.Context, userID int64) ([]models.Photo, error) {
	var removed []models.Photo
	err := db.withTx(ctx, "delete_user", func(tx *sqlx.Tx) error {
		providerID, err := currentProviderID(ctx, tx, userID)
		if err != nil {
			return err
		}

		start := time.Now()
		_, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM saved_houses WHERE userid = ?`), userID)
		if err := observe("delete", "saved_houses", start, err); err != nil {
			return classify("delete user bookmarks", err)
		}

		if providerID != nil {
			if removed, err = deleteProviderCascade(ctx, tx, *providerID); err != nil {
				return err
			}
		}

		start = time.Now()
		n, err := execAffected(ctx, tx, tx.Rebind(`DELETE FROM users WHERE userid = ?`), userID)
		if err := observe("delete", "users", start, err); err != nil {
			return classify("delete user", err)
		}
		if n == 0 {
			return classify("delete user", ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
