// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package photos

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func setupBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := OpenBadgerStore("", "http://localhost:3000/")
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func TestBadgerStore_UploadGetDestroy(t *testing.T) {
	t.Parallel()

	store := setupBadgerStore(t)
	ctx := context.Background()
	image := []byte("\x89PNG\r\n\x1a\nfake")

	stored, err := store.Upload(ctx, Upload{
		Body:        bytes.NewReader(image),
		Filename:    "porch.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(stored.URL, "http://localhost:3000/photos/") || !strings.HasSuffix(stored.URL, ".png") {
		t.Errorf("unexpected URL %q", stored.URL)
	}
	if got := PublicIDFromURL(stored.URL); got != stored.PublicID {
		t.Errorf("PublicIDFromURL(URL) = %q, want %q", got, stored.PublicID)
	}

	blob, err := store.Get(ctx, stored.PublicID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(blob.Data, image) {
		t.Error("stored bytes differ from upload")
	}
	if blob.Meta.ContentType != "image/png" || blob.Meta.Filename != "porch.png" || blob.Meta.Size != int64(len(image)) {
		t.Errorf("unexpected metadata %+v", blob.Meta)
	}

	if err := store.Destroy(ctx, stored.PublicID); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if _, err := store.Get(ctx, stored.PublicID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after destroy, got %v", err)
	}
	if err := store.Destroy(ctx, stored.PublicID); err != nil {
		t.Errorf("second Destroy() should be a no-op, got %v", err)
	}
}

func TestBadgerStore_EmptyUpload(t *testing.T) {
	t.Parallel()

	store := setupBadgerStore(t)
	_, err := store.Upload(context.Background(), Upload{Body: bytes.NewReader(nil), Filename: "empty.jpg"})
	if !errors.Is(err, ErrEmptyUpload) {
		t.Errorf("expected ErrEmptyUpload, got %v", err)
	}
}

func TestBadgerStore_GetMissing(t *testing.T) {
	t.Parallel()

	store := setupBadgerStore(t)
	if _, err := store.Get(context.Background(), "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	t.Parallel()

	store := setupBadgerStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Upload(ctx, Upload{Body: strings.NewReader("x")}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBadgerStore_RunGCInMemory(t *testing.T) {
	t.Parallel()

	store := setupBadgerStore(t)
	if err := store.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}
