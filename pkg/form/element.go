package form

// ElementKind identifies the control type of a form element.
type ElementKind string

const (
	// KindHeader starts a new form section. Headers carry no value.
	KindHeader ElementKind = "header"

	// KindStatic displays read-only markup. Statics carry no value.
	KindStatic ElementKind = "static"

	KindHidden   ElementKind = "hidden"
	KindText     ElementKind = "text"
	KindEditor   ElementKind = "editor" // rich-text editor, raw content
	KindSelect   ElementKind = "select"
	KindCheckbox ElementKind = "checkbox"
	KindDate     ElementKind = "date"
	KindFile     ElementKind = "file"
)

// Element is a single form control.
type Element struct {
	// Attrs holds extra rendering attributes (rows, cols, accept, ...).
	Attrs map[string]string

	// Default is the value pre-filled into the control.
	Default any

	Kind  ElementKind
	Name  string
	Label string
	Help  string

	// Options lists the choices of a select element, in display order.
	Options []string

	// Frozen elements render as disabled and ignore submitted values.
	Frozen bool
}

// ElementOption configures an element at creation time.
type ElementOption func(*Element)

// WithOptions sets the choices of a select element.
func WithOptions(options ...string) ElementOption {
	return func(e *Element) {
		e.Options = options
	}
}

// WithDefault sets the element's initial value.
func WithDefault(v any) ElementOption {
	return func(e *Element) {
		e.Default = v
	}
}

// WithHelp attaches help text rendered next to the control.
func WithHelp(help string) ElementOption {
	return func(e *Element) {
		e.Help = help
	}
}

// WithAttr sets an extra rendering attribute.
func WithAttr(key, value string) ElementOption {
	return func(e *Element) {
		if e.Attrs == nil {
			e.Attrs = make(map[string]string)
		}
		e.Attrs[key] = value
	}
}
