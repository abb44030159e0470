package service

import (
	"errors"

	"fabrisys-backend/internal/apperr"
	"fabrisys-backend/pkg/validator"

	"gorm.io/gorm"
)

// validationError converts the first validator failure into a typed
// validation error, matching the error text the UI already renders.
func validationError(errs []*validator.ErrorResponse) *apperr.Error {
	first := errs[0]
	return apperr.Validation("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

// wrapLookup maps a gorm read failure to the taxonomy: missing rows
// become NotFound, anything else a transaction failure.
func wrapLookup(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return apperr.Transaction(err)
}
