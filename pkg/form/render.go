package form

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/spf13/cast"
)

// Component returns a templ-compatible component rendering the form body.
// The surrounding <form> tag, submit button, and CSRF handling belong to
// the host page; this component only emits the field controls so it can
// be embedded into an existing edit form.
func (f *Form) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, el := range f.elements {
			if err := f.renderElement(w, el); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *Form) renderElement(w io.Writer, el *Element) error {
	switch el.Kind {
	case KindHeader:
		_, err := fmt.Fprintf(w, "<fieldset class=\"cf-section\" id=%q><legend>%s</legend></fieldset>\n",
			el.Name, templ.EscapeString(el.Label))
		return err
	case KindStatic:
		// Static content is trusted markup prepared by the field controller.
		_, err := fmt.Fprintf(w, "<div class=\"cf-static\" data-name=%q>%s</div>\n", el.Name, cast.ToString(el.Default))
		return err
	case KindHidden:
		_, err := fmt.Fprintf(w, "<input type=\"hidden\" name=%q value=%q>\n",
			el.Name, templ.EscapeString(cast.ToString(el.Default)))
		return err
	case KindSelect:
		return f.renderSelect(w, el)
	case KindCheckbox:
		return f.renderControl(w, el, func(w io.Writer) error {
			checked := ""
			if cast.ToBool(el.Default) {
				checked = " checked"
			}
			_, err := fmt.Fprintf(w, "<input type=\"checkbox\" name=%q id=%q%s%s>", el.Name, el.Name, checked, disabledAttr(el))
			return err
		})
	case KindDate:
		return f.renderControl(w, el, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "<input type=\"date\" name=%q id=%q value=%q%s>",
				el.Name, el.Name, templ.EscapeString(cast.ToString(el.Default)), disabledAttr(el))
			return err
		})
	case KindEditor:
		return f.renderControl(w, el, func(w io.Writer) error {
			text := editorText(el.Default)
			_, err := fmt.Fprintf(w, "<textarea name=%q id=%q class=\"cf-editor\"%s%s>%s</textarea>",
				el.Name, el.Name, attrString(el), disabledAttr(el), templ.EscapeString(text))
			return err
		})
	case KindFile:
		return f.renderControl(w, el, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "<input type=\"file\" name=%q id=%q%s%s>", el.Name, el.Name, attrString(el), disabledAttr(el))
			return err
		})
	default:
		return f.renderControl(w, el, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "<input type=\"text\" name=%q id=%q value=%q%s>",
				el.Name, el.Name, templ.EscapeString(cast.ToString(el.Default)), disabledAttr(el))
			return err
		})
	}
}

func (f *Form) renderSelect(w io.Writer, el *Element) error {
	return f.renderControl(w, el, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<select name=%q id=%q%s>", el.Name, el.Name, disabledAttr(el)); err != nil {
			return err
		}
		selected := cast.ToString(el.Default)
		for _, opt := range el.Options {
			sel := ""
			if opt == selected {
				sel = " selected"
			}
			if _, err := fmt.Fprintf(w, "<option value=%q%s>%s</option>",
				templ.EscapeString(opt), sel, templ.EscapeString(opt)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</select>")
		return err
	})
}

// renderControl wraps a control in the shared label/help scaffolding.
func (f *Form) renderControl(w io.Writer, el *Element, control func(io.Writer) error) error {
	required := ""
	if f.IsRequired(el.Name) {
		required = ` <abbr class="cf-required" title="required">*</abbr>`
	}
	if _, err := fmt.Fprintf(w, "<div class=\"cf-control\"><label for=%q>%s%s</label>",
		el.Name, templ.EscapeString(el.Label), required); err != nil {
		return err
	}
	if err := control(w); err != nil {
		return err
	}
	if el.Help != "" {
		if _, err := fmt.Fprintf(w, "<small class=\"cf-help\">%s</small>", templ.EscapeString(el.Help)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}

func disabledAttr(el *Element) string {
	if el.Frozen {
		return " disabled"
	}
	return ""
}

func attrString(el *Element) string {
	if len(el.Attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for k, v := range el.Attrs {
		fmt.Fprintf(&b, " %s=%q", k, templ.EscapeString(v))
	}
	return b.String()
}

// editorText extracts the text part of an editor default, which may be a
// plain string or a composite {text, format} map.
func editorText(v any) string {
	if m, ok := v.(map[string]any); ok {
		return cast.ToString(m["text"])
	}
	return cast.ToString(v)
}
