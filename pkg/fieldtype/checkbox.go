package fieldtype

import (
	"fmt"
	"html"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// Checkbox is a boolean field stored as "1" or "0".
type Checkbox struct {
	Base
}

// NewCheckbox builds a checkbox controller.
func NewCheckbox(e store.Entry, recordID, contextID int64) Controller {
	return &Checkbox{Base: NewBase(e, recordID, contextID)}
}

func (c *Checkbox) AddToForm(frm *form.Form) error {
	frm.AddElement(form.KindCheckbox, c.ElementName(), c.Field().Name,
		form.WithHelp(c.Field().Description))
	return nil
}

func (c *Checkbox) Fill(frm *form.Form) error {
	if !c.HasData() {
		return nil
	}
	return frm.SetDefault(c.ElementName(), c.Checked())
}

func (c *Checkbox) PrepareSave(v any) error {
	if cast.ToBool(v) {
		c.Data().Value = "1"
	} else {
		c.Data().Value = "0"
	}
	return nil
}

// Checked reports the stored boolean.
func (c *Checkbox) Checked() bool {
	return c.Data().Value == "1"
}

func (c *Checkbox) Display() string {
	label := "No"
	if c.Checked() {
		label = "Yes"
	}
	return fmt.Sprintf("<div class=\"cf-field\"><span class=\"cf-name\">%s</span>: <span class=\"cf-value\">%s</span></div>",
		html.EscapeString(c.Field().Name), label)
}

func (c *Checkbox) ExportValue() any {
	return c.Checked()
}
