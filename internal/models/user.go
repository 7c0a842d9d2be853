// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package models

import "time"

// User is an account row. PasswordHash is a bcrypt digest and is never
// serialized.
type User struct {
	CreatedAt    time.Time `db:"createdat" json:"-"`
	ProviderID   *int64    `db:"treatproviderid" json:"treatproviderid"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"passwordhash" json:"-"`
	ID           int64     `db:"userid" json:"userid"`
}

// IsProvider reports whether the user is linked to a provider profile.
func (u *User) IsProvider() bool {
	return u.ProviderID != nil
}

// UserSummary is one row of the user listing.
type UserSummary struct {
	ProviderID *int64 `db:"treatproviderid" json:"treatproviderid"`
	Email      string `db:"email" json:"email"`
	ID         int64  `db:"userid" json:"userid"`
}

// SavedHouse is a user's bookmark of a provider.
type SavedHouse struct {
	CreatedAt  time.Time `db:"createdat" json:"-"`
	UserID     int64     `db:"userid" json:"userid"`
	ProviderID int64     `db:"treatproviderid" json:"treatproviderid"`
}
