package fieldtype

import (
	"fmt"
	"html"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/sanitizer"
	"github.com/contentkit/customfields/pkg/store"
)

// Textarea is a rich-text field. Its form value is a composite
// {text, format} map: the text is stored in the generic value column and
// the format tag on the data row itself.
type Textarea struct {
	Base
}

// NewTextarea builds a textarea controller.
func NewTextarea(e store.Entry, recordID, contextID int64) Controller {
	return &Textarea{Base: NewBase(e, recordID, contextID)}
}

// AddToForm appends a rich-text editor accepting raw, unvalidated content.
// Sanitization happens on display, never on input, so no content is lost
// before an administrator decides how to render it.
func (t *Textarea) AddToForm(frm *form.Form) error {
	frm.AddElement(form.KindEditor, t.ElementName(), t.Field().Name,
		form.WithHelp(t.Field().Description),
		form.WithAttr("rows", t.Field().ConfigString("rows", "10")),
	)
	return nil
}

// Fill assembles the composite {text, format} default from stored data,
// normalizing the format tag and sanitizing the stored value.
func (t *Textarea) Fill(frm *form.Form) error {
	if !t.HasData() {
		return nil
	}
	d := t.Data()
	format := field.NormalizeFormat(d.ValueFormat)
	text := d.Value
	if format == field.FormatHTML {
		text = sanitizer.SanitizeHTML(text)
	}
	return frm.SetDefault(t.ElementName(), map[string]any{
		"text":   text,
		"format": int(format),
	})
}

// PrepareSave splits the composite submitted value: the format goes onto
// the data row, the plain text into the generic value storage.
func (t *Textarea) PrepareSave(v any) error {
	d := t.Data()
	if m, ok := v.(map[string]any); ok {
		d.Value = cast.ToString(m["text"])
		d.ValueFormat = int(field.NormalizeFormat(cast.ToInt(m["format"])))
		return nil
	}
	// A bare string keeps the row's existing format.
	d.Value = cast.ToString(v)
	return nil
}

func (t *Textarea) Display() string {
	d := t.Data()
	rendered := sanitizer.Render(d.Value, field.NormalizeFormat(d.ValueFormat))
	return fmt.Sprintf("<div class=\"cf-field\"><span class=\"cf-name\">%s</span>: <div class=\"cf-value\">%s</div></div>",
		html.EscapeString(t.Field().Name), rendered)
}

// ExportValue returns the sanitized rendering, matching what display
// pages show.
func (t *Textarea) ExportValue() any {
	d := t.Data()
	return sanitizer.Render(d.Value, field.NormalizeFormat(d.ValueFormat))
}

func textareaConfigControls(frm *form.Form, _ *field.Field) {
	frm.AddElement(form.KindText, "config_rows", "Editor rows",
		form.WithDefault("10"))
}
