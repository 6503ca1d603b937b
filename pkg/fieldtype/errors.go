package fieldtype

import "errors"

var (
	// ErrUnknownType is returned when a field references a type that is not
	// registered.
	ErrUnknownType = errors.New("fieldtype: unknown field type")

	// ErrDuplicateType is returned when a type name is registered twice.
	ErrDuplicateType = errors.New("fieldtype: type already registered")

	// ErrInvalidOption is returned when a submitted select value is not one
	// of the field's configured options.
	ErrInvalidOption = errors.New("fieldtype: value is not a configured option")
)
