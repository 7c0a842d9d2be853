// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/tomtom215/trickortreat/internal/geocode"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/models"
	"github.com/tomtom215/trickortreat/internal/photos"
)

const (
	msgProviderNotFound = "Treat provider not found"
	msgGeocodeFailed    = "Invalid address or geocoding failed"
)

// errGeocodeFailed wraps any geocoder failure, including a plain miss.
var errGeocodeFailed = errors.New("geocoding failed")

// CreateProvider stores a full provider profile with its photo URLs and links
// it to the caller. A non-blank address is geocoded first.
//
// Method: POST
// Path: /treatproviders/treatproviders
func (h *Handler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req models.CreateProviderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	location, err := h.resolveAddress(r.Context(), req.Address)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	newPhotos := make([]models.NewPhoto, len(req.Photos))
	for i, p := range req.Photos {
		newPhotos[i] = models.NewPhoto{URL: p.URL, Description: p.Description}
	}

	provider, replaced, err := h.db.CreateProvider(r.Context(), claims.UserID, models.ProviderFields{
		Description:    req.Description,
		Location:       location,
		TreatsProvided: req.TreatsProvided,
		Hours:          req.Hours,
		HauntedHouse:   req.HauntedHouse,
	}, newPhotos)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: msgUserNotFound})
		return
	}
	photos.DestroyQuietly(context.WithoutCancel(r.Context()), h.photos, replaced)

	logging.Ctx(r.Context()).Info().
		Int64("provider_id", provider.ID).
		Int("photos", len(provider.Photos)).
		Bool("geocoded", provider.HasCoordinate()).
		Msg("Provider created")

	NewResponseWriter(w, r).Created(provider)
}

// ListProviders returns every provider with its photos.
//
// Method: GET
// Path: /treatproviders/treatproviders
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.db.ListProviders(r.Context())
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{})
		return
	}
	WriteSuccess(w, r, providers)
}

// GetProvider returns one provider with its photos.
//
// Method: GET
// Path: /treatproviders/treatproviders/{id}
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := pathID(r, "id")
	if err != nil {
		WriteBadRequest(w, r, "Invalid treat provider id")
		return
	}

	provider, err := h.db.GetProvider(r.Context(), providerID)
	if err != nil {
		writeStoreError(w, r, err, storeErrorMessages{notFound: msgProviderNotFound})
		return
	}
	WriteSuccess(w, r, provider)
}

// UpdateProvider edits the caller's provider profile. The body is JSON or
// multipart/form-data; only supplied fields change. Photo files sent in the
// multipart "photos" field replace the whole photo set.
//
// Method: PUT
// Path: /treatproviders/treatproviders
func (h *Handler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var (
		req   models.UpdateProviderRequest
		files []photoFile
	)
	if isMultipart(r) {
		form, err := h.parseUpdateForm(w, r)
		if err != nil {
			writeFormError(w, r, err)
			return
		}
		defer form.cleanup()
		req, files = form.request, form.files
		if msg := validateRequest(&req); msg != "" {
			NewResponseWriter(w, r).ValidationError(msg)
			return
		}
	} else if !decodeAndValidate(w, r, &req) {
		return
	}

	upd, err := h.buildUpdate(r.Context(), &req)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	var uploaded []models.Photo
	if len(files) > 0 {
		upd.Photos, uploaded, err = h.uploadPhotos(r.Context(), files)
		if err != nil {
			photos.DestroyQuietly(context.WithoutCancel(r.Context()), h.photos, uploaded)
			NewResponseWriter(w, r).ExternalServiceError(h.photos.Backend(), err)
			return
		}
	}

	provider, err := h.db.UpdateProvider(r.Context(), claims.UserID, upd, photos.Destroyer(h.photos))
	if err != nil {
		photos.DestroyQuietly(context.WithoutCancel(r.Context()), h.photos, uploaded)
		writeStoreError(w, r, err, storeErrorMessages{notFound: "User is not a treat provider"})
		return
	}

	logging.Ctx(r.Context()).Info().
		Int64("provider_id", provider.ID).
		Int("photos_uploaded", len(uploaded)).
		Msg("Provider updated")

	WriteSuccess(w, r, provider)
}

// buildUpdate turns the optional request fields into a store update. An
// absent address leaves the location alone; a blank one clears it.
func (h *Handler) buildUpdate(ctx context.Context, req *models.UpdateProviderRequest) (*models.ProviderUpdate, error) {
	upd := &models.ProviderUpdate{
		TreatsProvided: req.TreatsProvided,
		Hours:          req.Hours,
		HauntedHouse:   req.HauntedHouse,
		Description:    req.Description,
	}
	if req.Address != nil {
		location, err := h.resolveAddress(ctx, *req.Address)
		if err != nil {
			return nil, err
		}
		upd.Location = &location
	}
	return upd, nil
}

// resolveAddress geocodes a non-blank address. A blank address resolves to
// an empty location without coordinates.
func (h *Handler) resolveAddress(ctx context.Context, address string) (models.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.Location{}, nil
	}

	coord, err := h.geocoder.ForwardGeocode(ctx, address)
	if err != nil {
		return models.Location{}, fmt.Errorf("%w: %w", errGeocodeFailed, err)
	}
	return models.Location{
		Address:   address,
		Latitude:  &coord.Latitude,
		Longitude: &coord.Longitude,
	}, nil
}

// writeGeocodeError answers a failed address lookup with 400. Misses are
// routine; other failures are logged.
func writeGeocodeError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, geocode.ErrNoMatch) {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Geocoding failed")
	}
	NewResponseWriter(w, r).BadRequest(msgGeocodeFailed)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
