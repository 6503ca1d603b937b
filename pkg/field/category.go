package field

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category is a named grouping of field definitions within a scope.
type Category struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	// Fields holds the category's field definitions ordered by SortOrder.
	// Populated by store queries that load full definitions; not persisted
	// as part of the category row itself.
	Fields []*Field

	ID          string
	Name        string
	Description string

	// Scope is the (component, area, itemid) triple the category belongs to.
	Scope Scope

	// ContextID is the host application context the category is configured
	// in, supplied by the content type's binding.
	ContextID int64

	SortOrder int
}

// NewCategory builds an unsaved category for the given scope and
// configuration context.
func NewCategory(scope Scope, contextID int64, name string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.NewString(),
		Name:      name,
		Scope:     scope,
		ContextID: contextID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the category before it is persisted.
func (c *Category) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, ErrEmptyName)
	}
	if !ValidName(c.Scope.Component) {
		errs = append(errs, ErrInvalidComponent)
	}
	if !ValidName(c.Scope.Area) {
		errs = append(errs, ErrInvalidArea)
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrValidation}, errs...)...)
	}
	return nil
}
