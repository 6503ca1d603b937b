package form

import "errors"

// Sentinel errors for form construction.
var (
	// ErrDuplicateElement is returned when an element name is added twice.
	ErrDuplicateElement = errors.New("form: duplicate element name")

	// ErrUnknownElement is returned when a rule or default references an
	// element that was never added.
	ErrUnknownElement = errors.New("form: unknown element")
)

// ValidationErrors maps element names to user-facing validation messages.
type ValidationErrors map[string]string

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	return "form: validation failed"
}

// Has reports whether the element has a validation error.
func (v ValidationErrors) Has(name string) bool {
	_, ok := v[name]
	return ok
}
