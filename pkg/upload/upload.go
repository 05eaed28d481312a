// Package upload validates and stores entity photos.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
)

// Store persists a photo under name and returns the value recorded on the
// owning entity.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.ReadSeeker) (string, error)
}

// PhotoName is the stored file name for an entity's photo.
func PhotoName(entityID, original string) string {
	return fmt.Sprintf("photo_%s%s", entityID, strings.ToLower(filepath.Ext(original)))
}

// Validate checks the declared content type, the size and the leading bytes
// of an uploaded file. It returns the file opened and rewound for storing.
func Validate(fh *multipart.FileHeader, maxBytes int64) (multipart.File, string, error) {
	if fh == nil {
		return nil, "", apperr.Validation("Please upload a file")
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", apperr.UploadRejected("Please upload an image file")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, "", apperr.UploadRejected("Please upload an image less than %d bytes", maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", apperr.Internal(err, "Problem with file upload")
	}
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", apperr.Internal(err, "Problem with file upload")
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		f.Close()
		return nil, "", apperr.UploadRejected("Please upload an image file")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", apperr.Internal(err, "Problem with file upload")
	}
	return f, contentType, nil
}
