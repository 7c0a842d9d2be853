// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/trickortreat/internal/metrics"
	"github.com/tomtom215/trickortreat/internal/models"
	"github.com/tomtom215/trickortreat/internal/photos"
)

// pngBytes is enough of a PNG for content sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func TestCreateProvider(t *testing.T) {
	env := newTestEnv(t)

	_, provider := env.createProvider("pat@example.com", map[string]interface{}{
		"address":        "1 Main St",
		"treatsProvided": "Full size candy bars",
		"hours":          "6pm - 9pm",
		"hauntedHouse":   true,
		"description":    "Fog machine in the yard",
		"photos": []map[string]string{
			{"url": "https://img.example.com/a.jpg", "description": "porch"},
			{"url": "https://img.example.com/b.jpg"},
		},
	})

	if provider.ID == 0 {
		t.Fatal("expected a provider id")
	}
	if provider.Address != "1 Main St" || !provider.HauntedHouse {
		t.Errorf("unexpected provider %+v", provider)
	}
	if !provider.HasCoordinate() || *provider.Latitude != 40.0 || *provider.Longitude != -75.0 {
		t.Errorf("coordinate = %v,%v, want 40,-75", provider.Latitude, provider.Longitude)
	}
	if len(provider.Photos) != 2 {
		t.Fatalf("got %d photos, want 2", len(provider.Photos))
	}
	if provider.Photos[0].Description == nil || *provider.Photos[0].Description != "porch" {
		t.Errorf("first photo description = %v, want porch", provider.Photos[0].Description)
	}
	if provider.Photos[1].Description != nil {
		t.Errorf("second photo description = %q, want nil", *provider.Photos[1].Description)
	}
}

func TestCreateProvider_BlankAddressSkipsGeocoder(t *testing.T) {
	env := newTestEnv(t)

	_, provider := env.createProvider("quinn@example.com", map[string]interface{}{
		"address":        "   ",
		"treatsProvided": "raisins",
	})
	if provider.HasCoordinate() {
		t.Error("blank address should store no coordinate")
	}
	if len(env.geo.calls) != 0 {
		t.Errorf("geocoder called %d times, want 0", len(env.geo.calls))
	}
}

func TestCreateProvider_GeocodeMiss(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("rosa@example.com", false)

	rec := env.do(http.MethodPost, "/treatproviders/treatproviders", map[string]interface{}{
		"address": "Nowhere Lane",
	}, user.Token)
	assertError(t, rec, http.StatusBadRequest, "Invalid address or geocoding failed")

	rec = env.do(http.MethodGet, "/treatproviders/treatproviders", nil, "")
	if providers := decodeBody[[]models.Provider](t, rec); len(providers) != 0 {
		t.Errorf("failed create left %d providers", len(providers))
	}
}

func TestCreateProvider_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/treatproviders/treatproviders", map[string]interface{}{"address": "1 Main St"}, "")
	assertError(t, rec, http.StatusUnauthorized, "")
}

func TestCreateProvider_InvalidPhotoURL(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("sam@example.com", false)

	rec := env.do(http.MethodPost, "/treatproviders/treatproviders", map[string]interface{}{
		"photos": []map[string]string{{"url": "not a url"}},
	}, user.Token)
	assertError(t, rec, http.StatusBadRequest, "")
}

func TestGetProvider(t *testing.T) {
	env := newTestEnv(t)
	_, created := env.createProvider("tess@example.com", map[string]interface{}{
		"address": "2 Elm St",
		"photos":  []map[string]string{{"url": "https://img.example.com/c.jpg"}},
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing", "/treatproviders/treatproviders/" + strconv.FormatInt(created.ID, 10), http.StatusOK},
		{"missing", "/treatproviders/treatproviders/999999", http.StatusNotFound},
		{"not a number", "/treatproviders/treatproviders/abc", http.StatusBadRequest},
		{"negative", "/treatproviders/treatproviders/-3", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, tt.path, nil, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			got := decodeBody[models.Provider](t, rec)
			if got.ID != created.ID || len(got.Photos) != 1 {
				t.Errorf("got %+v, want provider %d with 1 photo", got, created.ID)
			}
		})
	}
}

func TestListProviders_IncludesPhotos(t *testing.T) {
	env := newTestEnv(t)
	env.createProvider("uma@example.com", map[string]interface{}{"address": "1 Main St"})
	env.createProvider("vic@example.com", map[string]interface{}{
		"address": "2 Elm St",
		"photos":  []map[string]string{{"url": "https://img.example.com/d.jpg"}},
	})

	rec := env.do(http.MethodGet, "/treatproviders/treatproviders", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"photos":[]`) {
		t.Errorf("provider without photos should serialize an empty list: %s", rec.Body.String())
	}
	providers := decodeBody[[]models.Provider](t, rec)
	if len(providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(providers))
	}
	if providers[0].ID > providers[1].ID {
		t.Error("providers should be ordered by id")
	}
	if len(providers[1].Photos) != 1 {
		t.Errorf("second provider photos = %d, want 1", len(providers[1].Photos))
	}
}

func TestUpdateProvider_ClearAddressAndSetHaunted(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("wren@example.com", true)

	rec := env.do(http.MethodPut, "/treatproviders/treatproviders", map[string]interface{}{
		"hauntedHouse": true,
		"address":      "",
	}, user.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"latitude"`) {
		t.Errorf("cleared address should drop coordinates: %s", rec.Body.String())
	}
	provider := decodeBody[models.Provider](t, rec)
	if provider.Address != "" || !provider.HauntedHouse || provider.HasCoordinate() {
		t.Errorf("unexpected provider %+v", provider)
	}
	if len(env.geo.calls) != 0 {
		t.Error("blank address must not be geocoded")
	}
}

func TestUpdateProvider_PartialJSON(t *testing.T) {
	env := newTestEnv(t)
	user, created := env.createProvider("xena@example.com", map[string]interface{}{
		"address":        "1 Main St",
		"treatsProvided": "lollipops",
		"hours":          "5-8pm",
	})

	rec := env.do(http.MethodPut, "/treatproviders/treatproviders", `{"treatsprovided":"king size bars"}`, user.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}
	provider := decodeBody[models.Provider](t, rec)
	if provider.TreatsProvided != "king size bars" {
		t.Errorf("treats = %q", provider.TreatsProvided)
	}
	if provider.Hours != "5-8pm" || provider.Address != created.Address || !provider.HasCoordinate() {
		t.Errorf("untouched fields changed: %+v", provider)
	}

	rec = env.do(http.MethodPut, "/treatproviders/treatproviders", map[string]interface{}{"address": "3 Oak St"}, user.Token)
	provider = decodeBody[models.Provider](t, rec)
	if provider.Address != "3 Oak St" || *provider.Latitude != 40.05 {
		t.Errorf("re-geocoded provider = %+v", provider)
	}
}

func TestUpdateProvider_GeocodeFailureKeepsProfile(t *testing.T) {
	env := newTestEnv(t)
	user, created := env.createProvider("yuri@example.com", map[string]interface{}{"address": "1 Main St"})

	env.geo.setErr(errors.New("mapbox down"))
	rec := env.do(http.MethodPut, "/treatproviders/treatproviders", map[string]interface{}{
		"address": "2 Elm St",
		"hours":   "all night",
	}, user.Token)
	assertError(t, rec, http.StatusBadRequest, "Invalid address or geocoding failed")

	rec = env.do(http.MethodGet, "/treatproviders/treatproviders/"+strconv.FormatInt(created.ID, 10), nil, "")
	provider := decodeBody[models.Provider](t, rec)
	if provider.Address != "1 Main St" || provider.Hours != "" {
		t.Errorf("failed update changed the profile: %+v", provider)
	}
}

func TestUpdateProvider_NotProvider(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("zoe@example.com", false)

	rec := env.do(http.MethodPut, "/treatproviders/treatproviders", map[string]interface{}{"hours": "7pm"}, user.Token)
	assertError(t, rec, http.StatusNotFound, "User is not a treat provider")
}

// multipartRequest builds a PUT with form fields and PNG files.
func multipartRequest(t *testing.T, token string, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	for name, data := range files {
		part, err := mw.CreateFormFile(photosField, name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/treatproviders/treatproviders", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpdateProvider_MultipartReplacesPhotos(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("abe@example.com", true)

	req := multipartRequest(t, user.Token,
		map[string]string{"hauntedhouse": "TRUE", "treatsprovided": "gummies"},
		map[string][]byte{"front.png": pngBytes})
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("multipart update: status %d, body %s", rec.Code, rec.Body.String())
	}
	first := decodeBody[models.Provider](t, rec)
	if !first.HauntedHouse || first.TreatsProvided != "gummies" {
		t.Errorf("form fields not applied: %+v", first)
	}
	if len(first.Photos) != 1 {
		t.Fatalf("got %d photos, want 1", len(first.Photos))
	}
	if d := first.Photos[0].Description; d == nil || *d != "front.png" {
		t.Errorf("photo description = %v, want front.png", d)
	}
	oldURL, err := url.Parse(first.Photos[0].URL)
	if err != nil {
		t.Fatalf("parse photo url: %v", err)
	}

	rec = env.do(http.MethodGet, oldURL.Path, nil, "")
	if rec.Code != http.StatusOK || !bytes.Equal(rec.Body.Bytes(), pngBytes) {
		t.Fatalf("serve photo: status %d, %d bytes", rec.Code, rec.Body.Len())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}

	req = multipartRequest(t, user.Token, nil, map[string][]byte{"back.png": pngBytes})
	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second update: status %d, body %s", rec.Code, rec.Body.String())
	}
	second := decodeBody[models.Provider](t, rec)
	if len(second.Photos) != 1 || *second.Photos[0].Description != "back.png" {
		t.Fatalf("photos after replace = %+v", second.Photos)
	}

	rec = env.do(http.MethodGet, oldURL.Path, nil, "")
	assertError(t, rec, http.StatusNotFound, "Photo not found")
}

func TestUpdateProvider_MultipartRejections(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("bea@example.com", true)

	tooMany := map[string][]byte{}
	for i := 0; i <= env.cfg.Photos.MaxFiles; i++ {
		tooMany["p"+strconv.Itoa(i)+".png"] = pngBytes
	}

	tests := []struct {
		name       string
		files      map[string][]byte
		wantStatus int
	}{
		{"too many files", tooMany, http.StatusBadRequest},
		{"not an image", map[string][]byte{"notes.txt": []byte("just some text")}, http.StatusBadRequest},
		{"too large", map[string][]byte{"huge.png": append(append([]byte{}, pngBytes...), make([]byte, env.cfg.Photos.MaxFileBytes)...)}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.server.ServeHTTP(rec, multipartRequest(t, user.Token, nil, tt.files))
			assertError(t, rec, tt.wantStatus, "")
		})
	}

	rec := env.do(http.MethodGet, "/savedhouses/savedhouses", nil, user.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("sanity request failed: %d", rec.Code)
	}
}

// uploadSamples returns how many photo uploads the badger backend has observed.
func uploadSamples(t *testing.T) uint64 {
	t.Helper()
	h, ok := metrics.PhotoUploadBytes.WithLabelValues(photos.BackendBadger).(prometheus.Histogram)
	if !ok {
		t.Fatal("PhotoUploadBytes observer is not a histogram")
	}
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestUpdateProvider_MultipartRecordsEachUploadOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup("cal@example.com", true)

	before := uploadSamples(t)

	req := multipartRequest(t, user.Token, nil,
		map[string][]byte{"front.png": pngBytes, "side.png": pngBytes})
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("multipart update: status %d, body %s", rec.Code, rec.Body.String())
	}

	if got := uploadSamples(t) - before; got != 2 {
		t.Errorf("upload samples delta = %d, want 2", got)
	}
}
