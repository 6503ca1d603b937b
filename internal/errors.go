package internal

import "errors"

var (
	// ErrUnknownHandler is returned when no binding is registered for the
	// requested (component, area).
	ErrUnknownHandler = errors.New("customfields: no handler registered for component/area")

	// ErrDuplicateHandler is returned when a (component, area) pair is
	// registered twice. Registration collisions are programmer errors.
	ErrDuplicateHandler = errors.New("customfields: handler already registered")

	// ErrItemIDNotSupported is returned when a handler is requested with a
	// non-zero item id but the registration does not use item ids.
	ErrItemIDNotSupported = errors.New("customfields: handler does not use item ids")

	// ErrCategoryNameExhausted is returned when no unique category name
	// could be found within the suffix cap.
	ErrCategoryNameExhausted = errors.New("customfields: could not find a unique category name")

	// ErrUnknownFieldType is returned when a field references a type that
	// is not registered.
	ErrUnknownFieldType = errors.New("customfields: unknown field type")

	// ErrNotConfigurable is returned when a configuration write is
	// attempted without the configure capability.
	ErrNotConfigurable = errors.New("customfields: current user cannot configure fields")
)
