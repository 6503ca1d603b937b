package field

import (
	"errors"
	"fmt"
	"regexp"
)

// namePattern constrains component and area names. The same pattern applies
// to field short names so they can be used as form element names and map
// keys without escaping.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidName reports whether s is a valid component, area, or short name.
func ValidName(s string) bool {
	return namePattern.MatchString(s)
}

// Scope identifies where a set of custom fields applies.
// It is immutable by convention: construct it once via NewScope and pass
// it by value.
type Scope struct {
	// Component is the owning feature, e.g. "core_course".
	Component string

	// Area is the surface within the component the fields attach to,
	// e.g. "course".
	Area string

	// ItemID scopes fields to a sub-instance of the area.
	// Zero means the fields apply globally within the area.
	ItemID int64
}

// NewScope builds a validated scope. Invalid component or area names are
// programmer errors and fail construction.
func NewScope(component, area string, itemID int64) (Scope, error) {
	if !ValidName(component) {
		return Scope{}, errors.Join(ErrInvalidComponent, fmt.Errorf("component %q", component))
	}
	if !ValidName(area) {
		return Scope{}, errors.Join(ErrInvalidArea, fmt.Errorf("area %q", area))
	}
	return Scope{Component: component, Area: area, ItemID: itemID}, nil
}

// String returns a stable textual form, usable as a cache key.
func (s Scope) String() string {
	return fmt.Sprintf("%s/%s/%d", s.Component, s.Area, s.ItemID)
}

// IsZero reports whether the scope is the zero value.
func (s Scope) IsZero() bool {
	return s.Component == "" && s.Area == "" && s.ItemID == 0
}
