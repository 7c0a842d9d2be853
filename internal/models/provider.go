// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package models

import "time"

// Provider is a treat-giving household. Latitude and Longitude are either
// both set or both nil.
type Provider struct {
	Latitude       *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude      *float64 `db:"longitude" json:"longitude,omitempty"`
	Description    *string  `db:"description" json:"description"`
	Distance       *float64 `db:"distance" json:"distance,omitempty"`
	Address        string   `db:"address" json:"address"`
	TreatsProvided string   `db:"treatsprovided" json:"treatsprovided"`
	Hours          string   `db:"hours" json:"hours"`
	Photos         []Photo  `db:"-" json:"photos"`
	ID             int64    `db:"treatproviderid" json:"treatproviderid"`
	HauntedHouse   bool     `db:"hauntedhouse" json:"hauntedhouse"`
}

// HasCoordinate reports whether the provider has been geocoded.
func (p *Provider) HasCoordinate() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Photo is a stored image of a provider.
type Photo struct {
	CreatedAt   time.Time `db:"createdat" json:"-"`
	Description *string   `db:"description" json:"description"`
	URL         string    `db:"photourl" json:"photourl"`
	ID          int64     `db:"photoid" json:"photoid"`
	ProviderID  int64     `db:"treatproviderid" json:"-"`
}

// NewPhoto is a photo row waiting to be inserted.
type NewPhoto struct {
	Description *string
	URL         string
}

// Location is a geocoded address. A nil Latitude/Longitude pair with an empty
// Address clears the stored location.
type Location struct {
	Latitude  *float64
	Longitude *float64
	Address   string
}

// ProviderFields carries the columns written when a provider is created.
type ProviderFields struct {
	Description    *string
	Location       Location
	TreatsProvided string
	Hours          string
	HauntedHouse   bool
}

// ProviderUpdate carries the columns changed by a profile edit. Nil fields are
// left untouched.
type ProviderUpdate struct {
	TreatsProvided *string
	Hours          *string
	HauntedHouse   *bool
	Description    *string
	Location       *Location
	// Photos replaces the whole photo set when non-nil.
	Photos []NewPhoto
}
