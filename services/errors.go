package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bigbadbobbo/foodtruck-api/pkg/apperr"
)

// lookupErr turns a failed lookup into NotFound when the row is missing.
func lookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return apperr.Internal(err, "lookup failed: %s", fmt.Sprintf(format, args...))
}

// persistErr classifies a write failure.
func persistErr(err error) error {
	switch {
	case err == nil:
		return nil
	case apperr.KindOf(err) != apperr.KindInternal:
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Validation("Duplicate field value entered")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Validation("Referenced resource does not exist")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("Resource not found")
	default:
		return apperr.Internal(err, "persist failed")
	}
}
