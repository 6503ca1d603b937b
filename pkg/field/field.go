package field

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Field is a typed, configurable attribute declared by an administrator.
// Each field belongs to exactly one category.
type Field struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	// Config is the type-specific configuration blob, interpreted by the
	// matching field-type controller. Stored as JSON.
	Config map[string]any

	ID         string
	CategoryID string

	// Scope is denormalized from the owning category so a handler can be
	// resolved from a field record alone.
	Scope Scope

	// Type is the field-type tag, e.g. "text", "textarea", "select".
	Type string

	// ShortName is the machine name, unique within the scope. It is used
	// as the form element name and as the backup/restore key.
	ShortName string

	// Name is the human-readable display name.
	Name        string
	Description string

	SortOrder  int
	Required   bool
	Visibility Visibility
}

// New builds an unsaved field of the given type bound to a category.
func New(cat *Category, typeName string) *Field {
	now := time.Now()
	return &Field{
		ID:         uuid.NewString(),
		CategoryID: cat.ID,
		Scope:      cat.Scope,
		Type:       typeName,
		Config:     make(map[string]any),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks the field definition before it is persisted.
func (f *Field) Validate() error {
	var errs []error
	if f.Type == "" {
		errs = append(errs, ErrEmptyType)
	}
	if !ValidName(f.ShortName) {
		errs = append(errs, ErrInvalidShortName)
	}
	if f.Name == "" {
		errs = append(errs, ErrEmptyName)
	}
	if f.CategoryID == "" {
		errs = append(errs, errors.New("field: category id must not be empty"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrValidation}, errs...)...)
	}
	return nil
}

// ConfigString returns a string entry from the config blob, or def when
// the key is absent or not a string.
func (f *Field) ConfigString(key, def string) string {
	if v, ok := f.Config[key].(string); ok {
		return v
	}
	return def
}
