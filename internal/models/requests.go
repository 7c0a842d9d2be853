// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package models

// SignupRequest creates an account, optionally with a placeholder provider.
type SignupRequest struct {
	Email                  string `json:"email" validate:"required,email,max=255"`
	Password               string `json:"password" validate:"required,min=6,max=72"`
	WantsToBeTreatProvider bool   `json:"wantsToBeTreatProvider"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProviderStatusRequest opts the caller in or out of the provider role.
type ProviderStatusRequest struct {
	WantsToBeTreatProvider bool `json:"wantsToBeTreatProvider"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// PhotoInput is a photo supplied by URL when a profile is created.
type PhotoInput struct {
	Description *string `json:"description" validate:"omitempty,max=500"`
	URL         string  `json:"url" validate:"required,http_url,max=2048"`
}

// CreateProviderRequest is the first full profile submission.
type CreateProviderRequest struct {
	Description    *string      `json:"description" validate:"omitempty,max=2000"`
	Address        string       `json:"address" validate:"max=500"`
	TreatsProvided string       `json:"treatsProvided" validate:"max=500"`
	Hours          string       `json:"hours" validate:"max=200"`
	Photos         []PhotoInput `json:"photos" validate:"max=5,dive"`
	HauntedHouse   bool         `json:"hauntedHouse"`
}

// UpdateProviderRequest is a profile edit. Absent fields are left unchanged;
// a blank address clears the stored location.
type UpdateProviderRequest struct {
	Address        *string `json:"address" validate:"omitempty,max=500"`
	TreatsProvided *string `json:"treatsProvided" validate:"omitempty,max=500"`
	Hours          *string `json:"hours" validate:"omitempty,max=200"`
	HauntedHouse   *bool   `json:"hauntedHouse"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
}

// SaveHouseRequest bookmarks a provider.
type SaveHouseRequest struct {
	TreatProviderID int64 `json:"treatProviderId" validate:"required,gt=0"`
}
