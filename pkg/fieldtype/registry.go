package fieldtype

import (
	"errors"
	"fmt"
	"sort"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// Factory builds a controller for one field and one record.
type Factory func(e store.Entry, recordID, contextID int64) Controller

// Type describes one registered field type.
type Type struct {
	// New builds the per-record controller.
	New Factory

	// ConfigControls contributes the type-specific section of the
	// field-configuration form (e.g. the options list of a select).
	// Nil when the type has no extra configuration.
	ConfigControls func(frm *form.Form, f *field.Field)

	// Name is the type tag stored on field definitions.
	Name string

	// Label is the human-readable name shown in "add a field" menus.
	Label string
}

// Registry maps type tags to their implementations. Populate it during
// startup; it is safe for concurrent reads afterwards.
type Registry struct {
	types map[string]Type
}

// NewRegistry creates a registry pre-populated with the built-in types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, t := range builtinTypes() {
		// Built-in names cannot collide.
		_ = r.Register(t)
	}
	return r
}

// Register adds a field type. Registering an invalid or duplicate name is
// a programmer error and fails immediately.
func (r *Registry) Register(t Type) error {
	if !field.ValidName(t.Name) {
		return fmt.Errorf("fieldtype: invalid type name %q", t.Name)
	}
	if t.New == nil {
		return fmt.Errorf("fieldtype: type %q has no factory", t.Name)
	}
	if _, exists := r.types[t.Name]; exists {
		return errors.Join(ErrDuplicateType, fmt.Errorf("type %q", t.Name))
	}
	r.types[t.Name] = t
	return nil
}

// Type returns the named type.
func (r *Registry) Type(name string) (Type, error) {
	t, ok := r.types[name]
	if !ok {
		return Type{}, errors.Join(ErrUnknownType, fmt.Errorf("type %q", name))
	}
	return t, nil
}

// Types lists registered types sorted by name.
func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Controller builds a controller for a store entry, dispatching on the
// field's type tag.
func (r *Registry) Controller(e store.Entry, recordID, contextID int64) (Controller, error) {
	t, err := r.Type(e.Field.Type)
	if err != nil {
		return nil, err
	}
	return t.New(e, recordID, contextID), nil
}

func builtinTypes() []Type {
	return []Type{
		{Name: "text", Label: "Short text", New: NewText, ConfigControls: textConfigControls},
		{Name: "textarea", Label: "Text area", New: NewTextarea, ConfigControls: textareaConfigControls},
		{Name: "select", Label: "Dropdown menu", New: NewSelect, ConfigControls: selectConfigControls},
		{Name: "checkbox", Label: "Checkbox", New: NewCheckbox, ConfigControls: nil},
		{Name: "date", Label: "Date", New: NewDate, ConfigControls: nil},
		{Name: "file", Label: "File", New: NewFile, ConfigControls: fileConfigControls},
	}
}
