package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
	"github.com/bigbadbobbo/foodtruck-api/pkg/metrics"
	"github.com/bigbadbobbo/foodtruck-api/pkg/upload"
)

type photoSaver struct {
	store    upload.Store
	maxBytes int64
}

// save validates and stores an uploaded photo for entityID and returns the
// value to record on the entity.
func (p *photoSaver) save(ctx context.Context, entityID string, fh *multipart.FileHeader) (string, error) {
	if p == nil || p.store == nil {
		return "", apperr.Internal(errors.New("no photo store configured"), "Problem with file upload")
	}
	f, contentType, err := upload.Validate(fh, p.maxBytes)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", err
	}
	defer f.Close()

	stored, err := p.store.Save(ctx, upload.PhotoName(entityID, fh.Filename), contentType, f)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return "", apperr.Internal(err, "Problem with file upload")
	}
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return stored, nil
}
