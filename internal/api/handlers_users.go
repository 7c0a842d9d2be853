// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/database"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/models"
	"github.com/tomtom215/trickortreat/internal/photos"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
)

// Signup creates an account, optionally with a placeholder provider, and
// returns a token for it.
//
// Method: POST
// Path: /users/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if msg := validateRequest(&req); msg != "" {
		rw.ValidationError(msg)
		return
	}
	if err := h.config.Security.PasswordPolicy().Validate(req.Password, req.Email); err != nil {
		rw.ValidationError(err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		rw.InternalError(err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.Email, hash, req.WantsToBeTreatProvider)
	if err != nil {
		metrics.RecordAuthEvent("signup", false)
		if errors.Is(err, database.ErrDuplicate) {
			rw.BadRequest("Email already exists")
			return
		}
		writeStoreError(w, r, err, storeErrorMessages{})
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.ProviderID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	metrics.RecordAuthEvent("signup", true)

	logging.Ctx(r.Context()).Info().
		Int64("user_id", user.ID).
		Bool("provider", user.IsProvider()).
		Msg("User signed up")

	rw.Created(models.AuthResponse{
		Token:           token,
		UserID:          user.ID,
		TreatProviderID: user.ProviderID,
		Email:           user.Email,
	})
}

// Login verifies credentials and returns a token. Unknown emails and wrong
// passwords get the same answer and take the same time.
//
// Method: POST
// Path: /users/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if msg := validateRequest(&req); msg != "" {
		rw.ValidationError(msg)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, database.ErrNotFound) {
		h.hasher.Burn(req.Password)
		metrics.RecordAuthEvent("login", false)
		rw.Unauthorized(msgInvalidCredentials)
		return
	}
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{})
		return
	}

	if err := h.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		metrics.RecordAuthEvent("login", false)
		if errors.Is(err, auth.ErrPasswordMismatch) {
			logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("Login rejected: wrong password")
			rw.Unauthorized(msgInvalidCredentials)
			return
		}
		rw.InternalError(err)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.ProviderID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	metrics.RecordAuthEvent("login", true)

	rw.Success(models.AuthResponse{
		Token:           token,
		UserID:          user.ID,
		TreatProviderID: user.ProviderID,
		Email:           user.Email,
	})
}

// ListUsers returns every account as {userid, email, treatproviderid}.
//
// Method: GET
// Path: /users/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{})
		return
	}
	WriteSuccess(w, r, users)
}

// SetProviderStatus opts the caller in or out of the provider role.
//
// Method: PUT
// Path: /users/user/treatprovider
func (h *Handler) SetProviderStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req models.ProviderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	providerID, removed, err := h.db.SetProviderStatus(r.Context(), claims.UserID, req.WantsToBeTreatProvider)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: msgUserNotFound})
		return
	}
	photos.DestroyQuietly(context.WithoutCancel(r.Context()), h.photos, removed)

	logging.Ctx(r.Context()).Info().
		Bool("provider", providerID != nil).
		Msg("Provider status changed")

	WriteSuccess(w, r, models.ProviderStatusResponse{TreatProviderID: providerID})
}

// DeleteUser removes the account with its bookmarks and, when linked, its
// provider profile, photos and the bookmarks other users hold on it.
//
// Method: DELETE
// Path: /users/users/{userId}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		WriteBadRequest(w, r, "Invalid user id")
		return
	}

	removed, err := h.db.DeleteUser(r.Context(), userID)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: msgUserNotFound})
		return
	}
	photos.DestroyQuietly(context.WithoutCancel(r.Context()), h.photos, removed)

	logging.Ctx(r.Context()).Info().Int64("deleted_user_id", userID).Msg("User deleted")
	NewResponseWriter(w, r).Message(http.StatusOK, "User and all associated records deleted successfully")
}

// ChangePassword verifies the current password and stores a new hash.
//
// Method: PUT
// Path: /users/change-password/{userId}
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathID(r, "userId")
	if err != nil {
		rw.BadRequest("Invalid user id")
		return
	}

	var req models.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.db.GetUserByID(r.Context(), userID)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: msgUserNotFound})
		return
	}

	if err := h.hasher.Verify(user.PasswordHash, req.CurrentPassword); err != nil {
		metrics.RecordAuthEvent("password_change", false)
		if errors.Is(err, auth.ErrPasswordMismatch) {
			rw.Unauthorized("Current password is incorrect")
			return
		}
		rw.InternalError(err)
		return
	}
	if err := h.config.Security.PasswordPolicy().Validate(req.NewPassword, user.Email); err != nil {
		rw.ValidationError(err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if err := h.db.UpdatePassword(r.Context(), userID, hash); err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: msgUserNotFound})
		return
	}
	metrics.RecordAuthEvent("password_change", true)

	rw.Message(http.StatusOK, "Password changed successfully")
}
