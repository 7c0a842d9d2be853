// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/resilience"
)

// CloudinaryStore uploads photos to Cloudinary through the official SDK.
// Every call goes through a circuit breaker so an unreachable Cloudinary
// fails fast instead of stalling provider updates.
type CloudinaryStore struct {
	cld     *cloudinary.Cloudinary
	breaker *resilience.CircuitBreaker[struct{}]
	timeout time.Duration
	folder  string
}

// NewCloudinaryStore creates a Cloudinary-backed store.
func NewCloudinaryStore(cfg *config.PhotosConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	if cfg.CloudinaryURL != "" {
		prefix := strings.TrimRight(cfg.CloudinaryURL, "/")
		cld.Config.API.UploadPrefix = prefix
		cld.Upload.Config.API.UploadPrefix = prefix
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CloudinaryStore{
		cld:     cld,
		breaker: resilience.NewCircuitBreaker[struct{}]("cloudinary", resilience.Settings{}),
		timeout: timeout,
		folder:  strings.Trim(cfg.Folder, "/"),
	}, nil
}

// Backend implements Store.
func (s *CloudinaryStore) Backend() string { return BackendCloudinary }

// Close implements Store.
func (s *CloudinaryStore) Close() error { return nil }

// Upload implements Store.
func (s *CloudinaryStore) Upload(ctx context.Context, u Upload) (stored *Stored, err error) {
	defer func() { metrics.RecordPhotoOperation(BackendCloudinary, "upload", err) }()

	data, err := io.ReadAll(u.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var res *uploader.UploadResult
	_, err = s.breaker.Execute(func() (struct{}, error) {
		var callErr error
		res, callErr = s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{Folder: s.folder})
		if callErr != nil {
			return struct{}{}, fmt.Errorf("cloudinary upload failed: %w", callErr)
		}
		if res.Error.Message != "" {
			return struct{}{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return nil, fmt.Errorf("cloudinary upload reply missing secure_url or public_id")
	}

	metrics.RecordPhotoUpload(BackendCloudinary, int64(len(data)))
	return &Stored{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy implements Store. Ids without a folder are looked up in the
// configured folder.
func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) (err error) {
	defer func() { metrics.RecordPhotoOperation(BackendCloudinary, "destroy", err) }()

	if s.folder != "" && !strings.Contains(publicID, "/") {
		publicID = s.folder + "/" + publicID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err = s.breaker.Execute(func() (struct{}, error) {
		res, callErr := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
		if callErr != nil {
			return struct{}{}, fmt.Errorf("cloudinary destroy failed: %w", callErr)
		}
		if res.Error.Message != "" {
			return struct{}{}, fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
		}
		switch res.Result {
		case "ok", "not found":
			return struct{}{}, nil
		default:
			return struct{}{}, fmt.Errorf("cloudinary destroy result %q", res.Result)
		}
	})
	return err
}
