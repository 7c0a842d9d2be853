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
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/trickortreat/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	blobKeyPrefix = "photo:"
	metaKeyPrefix = "photo_meta:"
)

// Blob is a stored image with its metadata.
type Blob struct {
	Meta BlobMeta
	Data []byte
}

// BlobMeta is stored next to every blob.
type BlobMeta struct {
	CreatedAt   time.Time `json:"created_at"`
	ContentType string    `json:"content_type"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
}

// BadgerStore keeps photos in an embedded BadgerDB and exposes them under
// {baseURL}/photos/{publicId}{ext}.
type BadgerStore struct {
	db      *badger.DB
	baseURL string
}

// OpenBadgerStore opens (or creates) a BadgerDB at path. An empty path opens
// an in-memory database.
func OpenBadgerStore(path, baseURL string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for photos: %w", err)
	}
	return NewBadgerStore(db, baseURL), nil
}

// NewBadgerStore wraps an already opened database.
func NewBadgerStore(db *badger.DB, baseURL string) *BadgerStore {
	return &BadgerStore{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

// Backend implements Store.
func (s *BadgerStore) Backend() string { return BackendBadger }

// Upload implements Store.
func (s *BadgerStore) Upload(ctx context.Context, u Upload) (stored *Stored, err error) {
	defer func() { metrics.RecordPhotoOperation(BackendBadger, "upload", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(u.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	id := uuid.New().String()
	meta, err := json.Marshal(BlobMeta{
		CreatedAt:   time.Now().UTC(),
		ContentType: u.ContentType,
		Filename:    u.Filename,
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal photo metadata: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(blobKeyPrefix+id), data); err != nil {
			return fmt.Errorf("set photo: %w", err)
		}
		if err := txn.Set([]byte(metaKeyPrefix+id), meta); err != nil {
			return fmt.Errorf("set photo metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPhotoUpload(BackendBadger, int64(len(data)))
	return &Stored{
		URL:      s.baseURL + "/photos/" + id + extensionFor(u.Filename, u.ContentType),
		PublicID: id,
	}, nil
}

// Get returns a stored photo or ErrNotFound.
func (s *BadgerStore) Get(ctx context.Context, publicID string) (blob *Blob, err error) {
	defer func() {
		if !errors.Is(err, ErrNotFound) {
			metrics.RecordPhotoOperation(BackendBadger, "fetch", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blob = &Blob{}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKeyPrefix + publicID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get photo metadata: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &blob.Meta)
		}); err != nil {
			return fmt.Errorf("decode photo metadata: %w", err)
		}

		item, err = txn.Get([]byte(blobKeyPrefix + publicID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get photo: %w", err)
		}
		blob.Data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Destroy implements Store.
func (s *BadgerStore) Destroy(ctx context.Context, publicID string) (err error) {
	defer func() { metrics.RecordPhotoOperation(BackendBadger, "destroy", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{blobKeyPrefix + publicID, metaKeyPrefix + publicID} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete photo: %w", err)
			}
		}
		return nil
	})
}

// RunGC reclaims value log space once. It returns nil when there was
// nothing to collect.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) ||
		errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
