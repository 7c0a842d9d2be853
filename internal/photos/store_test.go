// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package photos

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/trickortreat/internal/config"
	"github.com/tomtom215/trickortreat/internal/models"
)

func TestPublicIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/treatproviders/abc123.jpg", "abc123"},
		{"http://localhost:3000/photos/0f8e2c1a-1111-2222-3333-444455556666.png", "0f8e2c1a-1111-2222-3333-444455556666"},
		{"https://example.com/photos/pumpkin?size=large", "pumpkin"},
		{"plain-id", "plain-id"},
		{"", ""},
		{"https://example.com/", ""},
	}

	for _, tt := range tests {
		if got := PublicIDFromURL(tt.url); got != tt.want {
			t.Errorf("PublicIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestExtensionFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename    string
		contentType string
		want        string
	}{
		{"porch.JPG", "image/jpeg", ".jpg"},
		{"", "image/png", ".png"},
		{"noext", "image/webp", ".webp"},
		{"noext", "application/octet-stream", ""},
	}
	for _, tt := range tests {
		if got := extensionFor(tt.filename, tt.contentType); got != tt.want {
			t.Errorf("extensionFor(%q, %q) = %q, want %q", tt.filename, tt.contentType, got, tt.want)
		}
	}
}

func TestNew_UnsupportedBackend(t *testing.T) {
	t.Parallel()

	if _, err := New(&config.PhotosConfig{Backend: "s3"}); err == nil {
		t.Error("expected error for unsupported backend")
	}
}

type recordingStore struct {
	destroyed []string
	failOn    string
}

func (r *recordingStore) Upload(context.Context, Upload) (*Stored, error) { return nil, nil }
func (r *recordingStore) Backend() string                                 { return "recording" }
func (r *recordingStore) Close() error                                    { return nil }

func (r *recordingStore) Destroy(_ context.Context, id string) error {
	r.destroyed = append(r.destroyed, id)
	if id == r.failOn {
		return errors.New("boom")
	}
	return nil
}

func TestDestroyer(t *testing.T) {
	t.Parallel()

	store := &recordingStore{failOn: "b"}
	err := Destroyer(store)(context.Background(), []models.Photo{
		{ID: 1, URL: "https://cdn.example.com/a.jpg"},
		{ID: 2, URL: "https://cdn.example.com/b.jpg"},
		{ID: 3, URL: "https://cdn.example.com/c.jpg"},
		{ID: 4, URL: ""},
	})

	if err == nil || !strings.Contains(err.Error(), "destroy photo 2") {
		t.Errorf("expected joined error for photo 2, got %v", err)
	}
	if got := strings.Join(store.destroyed, ","); got != "a,b,c" {
		t.Errorf("destroyed = %s, want a,b,c", got)
	}
}
