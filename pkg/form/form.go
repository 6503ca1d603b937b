package form

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// Form is an ordered collection of elements with validation rules.
// It is not safe for concurrent mutation; build it within one request.
type Form struct {
	byName   map[string]*Element
	required map[string]string // element name -> message
	elements []*Element
}

// New creates an empty form.
func New() *Form {
	return &Form{
		byName:   make(map[string]*Element),
		required: make(map[string]string),
	}
}

// AddHeader appends a section header.
func (f *Form) AddHeader(name, label string) *Element {
	el := &Element{Kind: KindHeader, Name: name, Label: label}
	f.append(el)
	return el
}

// AddElement appends a control of the given kind.
// Duplicate names panic: element naming is a programmer concern, and the
// handlers derive names from field short names which are unique per scope.
func (f *Form) AddElement(kind ElementKind, name, label string, opts ...ElementOption) *Element {
	el := &Element{Kind: kind, Name: name, Label: label}
	for _, opt := range opts {
		opt(el)
	}
	f.append(el)
	return el
}

func (f *Form) append(el *Element) {
	if _, exists := f.byName[el.Name]; exists {
		panic(fmt.Errorf("%w: %s", ErrDuplicateElement, el.Name))
	}
	f.elements = append(f.elements, el)
	f.byName[el.Name] = el
}

// Element returns the named element.
func (f *Form) Element(name string) (*Element, bool) {
	el, ok := f.byName[name]
	return el, ok
}

// Elements returns the elements in insertion order.
// The returned slice must not be modified.
func (f *Form) Elements() []*Element {
	return f.elements
}

// SetDefault pre-fills the named control.
func (f *Form) SetDefault(name string, v any) error {
	el, ok := f.byName[name]
	if !ok {
		return errors.Join(ErrUnknownElement, fmt.Errorf("element %q", name))
	}
	el.Default = v
	return nil
}

// Require marks the named control as required with the given message.
func (f *Form) Require(name, message string) error {
	if _, ok := f.byName[name]; !ok {
		return errors.Join(ErrUnknownElement, fmt.Errorf("element %q", name))
	}
	f.required[name] = message
	return nil
}

// IsRequired reports whether the named control is required.
func (f *Form) IsRequired(name string) bool {
	_, ok := f.required[name]
	return ok
}

// Freeze disables the named controls. Frozen controls render as disabled
// and their submitted values are ignored.
func (f *Form) Freeze(names ...string) {
	for _, name := range names {
		if el, ok := f.byName[name]; ok {
			el.Frozen = true
		}
	}
}

// FreezeAll disables every value-carrying control.
func (f *Form) FreezeAll() {
	for _, el := range f.elements {
		if el.Kind != KindHeader && el.Kind != KindStatic {
			el.Frozen = true
		}
	}
}

// Validate checks submitted values against the form's rules.
// Returns nil when the form is valid.
func (f *Form) Validate(values map[string]any) ValidationErrors {
	errs := make(ValidationErrors)
	for name, message := range f.required {
		el := f.byName[name]
		if el.Frozen {
			continue
		}
		v, ok := values[name]
		if !ok || isEmptyValue(el.Kind, v) {
			errs[name] = message
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// isEmptyValue reports whether a submitted value counts as "not provided"
// for required-rule purposes. Checkboxes are never empty: an unchecked box
// is a legitimate false.
func isEmptyValue(kind ElementKind, v any) bool {
	switch kind {
	case KindCheckbox:
		return false
	case KindDate:
		return cast.ToInt64(v) == 0
	case KindEditor:
		// Editors submit a composite {text, format} map.
		if m, ok := v.(map[string]any); ok {
			return cast.ToString(m["text"]) == ""
		}
		return cast.ToString(v) == ""
	default:
		return cast.ToString(v) == ""
	}
}
