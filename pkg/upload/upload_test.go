package upload

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")

// fileHeader builds a multipart.FileHeader the way gin's FormFile would.
func fileHeader(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestValidateAcceptsImage(t *testing.T) {
	f, ct, err := Validate(fileHeader(t, "truck.PNG", "image/png", pngBytes), 1024)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "image/png", ct)

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
}

func TestValidateRejectsNonImage(t *testing.T) {
	_, _, err := Validate(fileHeader(t, "notes.txt", "text/plain", []byte("hello")), 1024)
	assert.True(t, apperr.Is(err, apperr.KindUploadRejected))
	assert.Equal(t, "Please upload an image file", err.Error())
}

func TestValidateRejectsDisguisedFile(t *testing.T) {
	_, _, err := Validate(fileHeader(t, "fake.png", "image/png", []byte("plain text pretending")), 1024)
	assert.True(t, apperr.Is(err, apperr.KindUploadRejected))
}

func TestValidateRejectsOversize(t *testing.T) {
	_, _, err := Validate(fileHeader(t, "big.png", "image/png", pngBytes), 4)
	assert.True(t, apperr.Is(err, apperr.KindUploadRejected))
	assert.Contains(t, err.Error(), "less than 4 bytes")
}

func TestValidateMissingFile(t *testing.T) {
	_, _, err := Validate(nil, 10)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPhotoName(t *testing.T) {
	assert.Equal(t, "photo_abc.jpg", PhotoName("abc", "Me.JPG"))
	assert.Equal(t, "photo_abc", PhotoName("abc", "noext"))
}

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(filepath.Join(dir, "photos"))
	require.NoError(t, err)

	name, err := s.Save(context.Background(), "photo_1.png", "image/png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "photo_1.png", name)

	got, err := os.ReadFile(filepath.Join(dir, "photos", "photo_1.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
}
