// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/models"
)

// Backend names accepted by PHOTO_BACKEND.
const (
	BackendBadger     = "badger"
	BackendCloudinary = "cloudinary"
)

var (
	// ErrNotFound is returned when a stored photo does not exist.
	ErrNotFound = errors.New("photo not found")

	// ErrEmptyUpload is returned for an upload without content.
	ErrEmptyUpload = errors.New("empty photo upload")
)

// Upload is one image received from a client.
type Upload struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

// Stored describes an image after it has been persisted.
type Stored struct {
	URL      string
	PublicID string
}

// Store persists provider photos.
type Store interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, u Upload) (*Stored, error)
	// Destroy removes an image. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, publicID string) error
	// Backend names the implementation for metrics and logs.
	Backend() string
	// Close releases resources held by the store.
	Close() error
}

// New opens the store selected by cfg.Backend.
func New(cfg *config.PhotosConfig) (Store, error) {
	switch cfg.Backend {
	case BackendBadger, "":
		return OpenBadgerStore(cfg.BadgerPath, cfg.PublicBaseURL)
	case BackendCloudinary:
		return NewCloudinaryStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported photo backend: %s", cfg.Backend)
	}
}

// PublicIDFromURL returns the last path segment of a photo URL without its
// extension, which is the id both backends use.
//
//	https://res.cloudinary.com/demo/image/upload/v17/treatproviders/abc123.jpg -> abc123
func PublicIDFromURL(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Destroyer returns a function that removes the media behind photo rows.
// Every photo is attempted; the errors are joined.
func Destroyer(s Store) func(ctx context.Context, photos []models.Photo) error {
	return func(ctx context.Context, photos []models.Photo) error {
		var errs []error
		for i := range photos {
			id := PublicIDFromURL(photos[i].URL)
			if id == "" {
				continue
			}
			if err := s.Destroy(ctx, id); err != nil {
				errs = append(errs, fmt.Errorf("destroy photo %d: %w", photos[i].ID, err))
			}
		}
		return errors.Join(errs...)
	}
}

// DestroyQuietly removes media for photo rows that were already deleted from
// the database. Failures are logged and otherwise ignored.
func DestroyQuietly(ctx context.Context, s Store, photos []models.Photo) {
	if s == nil || len(photos) == 0 {
		return
	}
	if err := Destroyer(s)(ctx, photos); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int("photos", len(photos)).Msg("Failed to destroy photo media")
	}
}

// extensionFor picks a file extension for a stored image.
func extensionFor(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
