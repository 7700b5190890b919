package apperrors

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrFormNotLive   = errors.New("form is not published")
	ErrSeedsDisabled = errors.New("reseed is disabled")
)
