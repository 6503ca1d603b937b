package fieldtype

import (
	"fmt"
	"html"
	"path"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// File stores the object-storage key of an uploaded attachment. The
// upload itself happens in the transport layer (see pkg/attachments);
// by the time the form value reaches the controller it is already a key.
type File struct {
	Base
}

// NewFile builds a file controller.
func NewFile(e store.Entry, recordID, contextID int64) Controller {
	return &File{Base: NewBase(e, recordID, contextID)}
}

func (f *File) AddToForm(frm *form.Form) error {
	opts := []form.ElementOption{form.WithHelp(f.Field().Description)}
	if accept := f.Field().ConfigString("accept", ""); accept != "" {
		opts = append(opts, form.WithAttr("accept", accept))
	}
	frm.AddElement(form.KindFile, f.ElementName(), f.Field().Name, opts...)
	return nil
}

func (f *File) PrepareSave(v any) error {
	f.Data().Value = cast.ToString(v)
	return nil
}

// Display shows the attachment's file name; resolving a download URL is
// the transport layer's job.
func (f *File) Display() string {
	name := ""
	if key := f.Data().Value; key != "" {
		name = path.Base(key)
	}
	return fmt.Sprintf("<div class=\"cf-field\"><span class=\"cf-name\">%s</span>: <span class=\"cf-value cf-attachment\">%s</span></div>",
		html.EscapeString(f.Field().Name), html.EscapeString(name))
}

func fileConfigControls(frm *form.Form, _ *field.Field) {
	frm.AddElement(form.KindText, "config_accept", "Accepted file types",
		form.WithHelp("Comma-separated list, e.g. .pdf,.png"))
}
