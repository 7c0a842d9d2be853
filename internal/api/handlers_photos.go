// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/photos"
)

// ServePhoto streams a photo kept by the embedded store. The path segment may
// carry the extension that appears in stored URLs.
//
// Method: GET
// Path: /photos/{publicId}
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	reader, ok := h.photos.(photoBlobReader)
	if !ok {
		WriteNotFound(w, r, "Photo not found")
		return
	}

	name := chi.URLParam(r, "publicId")
	publicID := strings.TrimSuffix(name, path.Ext(name))
	if publicID == "" || strings.ContainsAny(publicID, "/\\") {
		WriteNotFound(w, r, "Photo not found")
		return
	}

	blob, err := reader.Get(r.Context(), publicID)
	if errors.Is(err, photos.ErrNotFound) {
		WriteNotFound(w, r, "Photo not found")
		return
	}
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", blob.Meta.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob.Data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write photo")
	}
}
