package fieldtype

import (
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// Text is a single-line string field. The base behavior already covers
// it; the type only contributes configuration controls.
type Text struct {
	Base
}

// NewText builds a text controller.
func NewText(e store.Entry, recordID, contextID int64) Controller {
	return &Text{Base: NewBase(e, recordID, contextID)}
}

func (t *Text) AddToForm(frm *form.Form) error {
	opts := []form.ElementOption{form.WithHelp(t.Field().Description)}
	if maxlen := t.Field().ConfigString("maxlength", ""); maxlen != "" {
		opts = append(opts, form.WithAttr("maxlength", maxlen))
	}
	frm.AddElement(form.KindText, t.ElementName(), t.Field().Name, opts...)
	return nil
}

func textConfigControls(frm *form.Form, _ *field.Field) {
	frm.AddElement(form.KindText, "config_maxlength", "Maximum length",
		form.WithHelp("Leave empty for no limit"))
}
