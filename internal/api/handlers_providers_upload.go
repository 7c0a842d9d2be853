// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/models"
	"github.com/tomtom215/trickortreat/internal/photos"
)

const (
	// photosField is the multipart field carrying photo files.
	photosField = "photos"

	// multipartMemory is how much of a form is buffered in memory before
	// file parts spill to disk.
	multipartMemory = 8 << 20

	// formOverhead allows for the non-file fields of a profile form.
	formOverhead = 1 << 20

	sniffLen = 512
)

// Form errors
var (
	errFormTooLarge    = errors.New("form too large")
	errInvalidForm     = errors.New("invalid multipart form")
	errTooManyPhotos   = errors.New("too many photos")
	errPhotoTooLarge   = errors.New("photo too large")
	errUnsupportedType = errors.New("unsupported photo type")
)

// photoFile is one accepted upload, already checked against the limits.
type photoFile struct {
	header      *multipart.FileHeader
	contentType string
}

// updateForm is a parsed multipart profile edit.
type updateForm struct {
	form    *multipart.Form
	request models.UpdateProviderRequest
	files   []photoFile
}

func (f *updateForm) cleanup() {
	if err := f.form.RemoveAll(); err != nil {
		logging.Debug().Err(err).Msg("Failed to remove multipart temp files")
	}
}

// parseUpdateForm reads a multipart profile edit. Field names are accepted
// in camelCase and lowercase spelling.
func (h *Handler) parseUpdateForm(w http.ResponseWriter, r *http.Request) (*updateForm, error) {
	limits := h.config.Photos
	r.Body = http.MaxBytesReader(w, r.Body, int64(limits.MaxFiles)*limits.MaxFileBytes+formOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errFormTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	form := &updateForm{form: r.MultipartForm}

	value := func(names ...string) *string {
		for _, name := range names {
			if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
				v := vs[0]
				return &v
			}
		}
		return nil
	}
	form.request.Address = value("address")
	form.request.TreatsProvided = value("treatsProvided", "treatsprovided")
	form.request.Hours = value("hours")
	form.request.Description = value("description")
	if v := value("hauntedHouse", "hauntedhouse"); v != nil {
		haunted := strings.EqualFold(strings.TrimSpace(*v), "true")
		form.request.HauntedHouse = &haunted
	}

	headers := r.MultipartForm.File[photosField]
	if len(headers) > limits.MaxFiles {
		form.cleanup()
		return nil, fmt.Errorf("%w: %d files, max %d", errTooManyPhotos, len(headers), limits.MaxFiles)
	}
	for _, fh := range headers {
		if fh.Size > limits.MaxFileBytes {
			form.cleanup()
			return nil, fmt.Errorf("%w: %s is %d bytes", errPhotoTooLarge, sanitizeLogValue(fh.Filename), fh.Size)
		}
		contentType, err := sniffContentType(fh)
		if err != nil {
			form.cleanup()
			return nil, err
		}
		if !slices.Contains(limits.AllowedMIMETypes, contentType) {
			form.cleanup()
			return nil, fmt.Errorf("%w: %s", errUnsupportedType, contentType)
		}
		form.files = append(form.files, photoFile{header: fh, contentType: contentType})
	}
	return form, nil
}

// sniffContentType detects the image type from the file content rather than
// trusting the client header.
func sniffContentType(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %v", errInvalidForm, err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: empty file", errUnsupportedType)
	}
	return http.DetectContentType(buf[:n]), nil
}

// writeFormError answers a rejected multipart edit.
func writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, errFormTooLarge), errors.Is(err, errPhotoTooLarge):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Photo exceeds the maximum upload size")
	case errors.Is(err, errTooManyPhotos):
		rw.ValidationError("Too many photos in one upload")
	case errors.Is(err, errUnsupportedType):
		rw.ValidationError("Unsupported photo type")
	default:
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected multipart form")
		rw.BadRequest("Invalid multipart form")
	}
}

// uploadPhotos sends every file to the photo store. It returns the new photo
// rows to insert and, for cleanup, the photos uploaded so far, even when a
// later upload fails.
func (h *Handler) uploadPhotos(ctx context.Context, files []photoFile) ([]models.NewPhoto, []models.Photo, error) {
	newPhotos := make([]models.NewPhoto, 0, len(files))
	uploaded := make([]models.Photo, 0, len(files))

	for _, pf := range files {
		stored, err := h.uploadOne(ctx, pf)
		if err != nil {
			return nil, uploaded, err
		}
		description := pf.header.Filename
		newPhotos = append(newPhotos, models.NewPhoto{URL: stored.URL, Description: &description})
		uploaded = append(uploaded, models.Photo{URL: stored.URL})
	}
	return newPhotos, uploaded, nil
}

func (h *Handler) uploadOne(ctx context.Context, pf photoFile) (*photos.Stored, error) {
	f, err := pf.header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", sanitizeLogValue(pf.header.Filename), err)
	}
	defer f.Close()

	stored, err := h.photos.Upload(ctx, photos.Upload{
		Body:        f,
		Filename:    pf.header.Filename,
		ContentType: pf.contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", sanitizeLogValue(pf.header.Filename), err)
	}
	return stored, nil
}
