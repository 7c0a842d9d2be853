// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"net/http"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/models"
)

// SaveHouse bookmarks a provider for the caller.
//
// Method: POST
// Path: /savedhouses/savedhouses
func (h *Handler) SaveHouse(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req models.SaveHouseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.db.SaveHouse(r.Context(), claims.UserID, req.TreatProviderID); err != nil {
		writeStoreError(w, r, err, storeErrorMessages{
			notFound:  msgProviderNotFound,
			duplicate: "House already saved",
		})
		return
	}

	logging.Ctx(r.Context()).Debug().Int64("provider_id", req.TreatProviderID).Msg("House saved")
	NewResponseWriter(w, r).Message(http.StatusCreated, "House saved successfully")
}

// ListSavedHouses returns the caller's bookmarked providers in the order
// they were saved.
//
// Method: GET
// Path: /savedhouses/savedhouses
func (h *Handler) ListSavedHouses(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	providers, err := h.db.ListSavedHouses(r.Context(), claims.UserID)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{})
		return
	}
	WriteSuccess(w, r, providers)
}

// DeleteSavedHouse removes one of the caller's bookmarks.
//
// Method: DELETE
// Path: /savedhouses/savedhouses/{treatProviderId}
func (h *Handler) DeleteSavedHouse(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	providerID, err := pathID(r, "treatProviderId")
	if err != nil {
		WriteBadRequest(w, r, "Invalid treat provider id")
		return
	}

	if err := h.db.DeleteSavedHouse(r.Context(), claims.UserID, providerID); err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: "Saved house not found"})
		return
	}
	NewResponseWriter(w, r).Message(http.StatusOK, "Saved house deleted successfully")
}
