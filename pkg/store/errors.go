package store

import "errors"

var (
	// ErrNotFound is returned when a category, field, or data row does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateName is returned when saving a category whose name is
	// already taken within its scope, or a field whose short name is taken.
	// It is always joined with field.ErrValidation so callers can treat it
	// as a domain validation failure.
	ErrDuplicateName = errors.New("store: name already in use")
)
