package field

import "errors"

// Sentinel errors for the custom-fields data model.
var (
	// ErrValidation is the root of all entity validation failures.
	// Specific causes are joined onto it, so errors.Is(err, ErrValidation)
	// detects any invalid entity.
	ErrValidation = errors.New("field: validation failed")

	// ErrInvalidComponent is returned when a scope component name does not
	// match the required pattern (lowercase letters, digits, underscores).
	ErrInvalidComponent = errors.New("field: invalid component name")

	// ErrInvalidArea is returned when a scope area name does not match the
	// required pattern.
	ErrInvalidArea = errors.New("field: invalid area name")

	// ErrInvalidShortName is returned when a field short name does not match
	// the required pattern.
	ErrInvalidShortName = errors.New("field: invalid short name")

	// ErrEmptyName is returned when a category or field display name is empty.
	ErrEmptyName = errors.New("field: name must not be empty")

	// ErrEmptyType is returned when a field has no type tag.
	ErrEmptyType = errors.New("field: type must not be empty")

	// ErrUnknownVisibility is returned when a visibility tag cannot be parsed.
	ErrUnknownVisibility = errors.New("field: unknown visibility")
)
