package fieldtype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// Select is a dropdown field. Its options come from the field's config
// blob, one option per line.
type Select struct {
	Base
}

// NewSelect builds a select controller.
func NewSelect(e store.Entry, recordID, contextID int64) Controller {
	return &Select{Base: NewBase(e, recordID, contextID)}
}

// Options returns the configured choices in display order.
func (s *Select) Options() []string {
	raw := s.Field().ConfigString("options", "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (s *Select) AddToForm(frm *form.Form) error {
	frm.AddElement(form.KindSelect, s.ElementName(), s.Field().Name,
		form.WithOptions(s.Options()...),
		form.WithHelp(s.Field().Description),
	)
	return nil
}

// PrepareSave stores the chosen option after checking it is configured.
// An empty submission clears the value.
func (s *Select) PrepareSave(v any) error {
	chosen := cast.ToString(v)
	if chosen == "" {
		s.Data().Value = ""
		return nil
	}
	for _, opt := range s.Options() {
		if opt == chosen {
			s.Data().Value = chosen
			return nil
		}
	}
	return errors.Join(ErrInvalidOption, fmt.Errorf("field %q value %q", s.Field().ShortName, chosen))
}

func selectConfigControls(frm *form.Form, _ *field.Field) {
	frm.AddElement(form.KindEditor, "config_options", "Menu options",
		form.WithHelp("One option per line"),
		form.WithAttr("rows", "5"))
}
