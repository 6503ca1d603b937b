package fieldtype

import (
	"fmt"
	"html"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// elementPrefix namespaces custom-field controls inside host edit forms so
// they cannot collide with the host's own element names.
const elementPrefix = "customfield_"

// Base carries the generic behavior shared by all field-type controllers:
// data-row bookkeeping, element naming, and plain-string value handling.
// Concrete controllers embed it and override what differs.
type Base struct {
	fld     *field.Field
	data    *field.Data
	hasData bool
}

// NewBase builds the shared controller state from a store entry. When the
// record has no data row yet, an unsaved one is created so PrepareSave
// always has a target.
func NewBase(e store.Entry, recordID, contextID int64) Base {
	b := Base{fld: e.Field, data: e.Data, hasData: e.Data != nil}
	if b.data == nil {
		b.data = field.NewData(e.Field, recordID, contextID)
	}
	return b
}

func (b *Base) Field() *field.Field { return b.fld }
func (b *Base) Data() *field.Data   { return b.data }
func (b *Base) HasData() bool       { return b.hasData }

func (b *Base) ElementName() string {
	return elementPrefix + b.fld.ShortName
}

// AddToForm appends a plain text input. Types with richer controls override.
func (b *Base) AddToForm(frm *form.Form) error {
	frm.AddElement(form.KindText, b.ElementName(), b.fld.Name, form.WithHelp(b.fld.Description))
	return nil
}

// AfterData is a no-op by default.
func (b *Base) AfterData(_ *form.Form) error { return nil }

// Fill sets the stored value as the control's default.
func (b *Base) Fill(frm *form.Form) error {
	if !b.hasData {
		return nil
	}
	return frm.SetDefault(b.ElementName(), b.data.Value)
}

// PrepareSave stores the submitted value as a plain string.
func (b *Base) PrepareSave(v any) error {
	b.data.Value = cast.ToString(v)
	return nil
}

// Display renders "name: value" with both parts escaped.
func (b *Base) Display() string {
	return fmt.Sprintf("<div class=\"cf-field\"><span class=\"cf-name\">%s</span>: <span class=\"cf-value\">%s</span></div>",
		html.EscapeString(b.fld.Name), html.EscapeString(b.data.Value))
}

// ExportValue returns the raw stored string.
func (b *Base) ExportValue() any {
	return b.data.Value
}
