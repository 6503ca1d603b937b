package fieldtype

import (
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
)

// Controller handles one field's form wiring and value marshaling for one
// host record. Controllers are request-scoped: build them, use them, drop
// them.
type Controller interface {
	// Field returns the wrapped field definition.
	Field() *field.Field

	// Data returns the record's data row for the field. It is an unsaved
	// row (zero value, no persisted ID state) when the record has no value
	// yet; use HasData to tell the difference.
	Data() *field.Data

	// HasData reports whether the record had a persisted value when the
	// controller was built.
	HasData() bool

	// ElementName returns the form element name for the field.
	ElementName() string

	// AddToForm appends the field's edit control to the form.
	AddToForm(frm *form.Form) error

	// AfterData runs after the form definition is complete and defaults
	// are known. Most types have nothing to do here.
	AfterData(frm *form.Form) error

	// Fill loads the stored value into the form as the control's default.
	Fill(frm *form.Form) error

	// PrepareSave maps a submitted form value onto the data row.
	// It does not persist; the handler saves through the store.
	PrepareSave(v any) error

	// Display renders the field's name and sanitized value as HTML markup.
	Display() string

	// ExportValue returns the value in its webservice representation.
	ExportValue() any
}
