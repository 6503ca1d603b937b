package field

// Format tags how a stored rich-text value should be interpreted when it
// is rendered or loaded back into an editor.
type Format int

const (
	// FormatHTML marks the value as HTML. It is sanitized before display.
	FormatHTML Format = 0

	// FormatMarkdown marks the value as Markdown. It is rendered to HTML
	// and then sanitized before display.
	FormatMarkdown Format = 1

	// FormatPlain marks the value as plain text. It is escaped verbatim.
	FormatPlain Format = 2
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "markdown"
	case FormatPlain:
		return "plain"
	default:
		return "html"
	}
}

// NormalizeFormat coerces arbitrary stored format tags into a supported
// Format. Unknown tags fall back to HTML, which is the safe choice because
// HTML values are always sanitized before display.
func NormalizeFormat(raw int) Format {
	switch Format(raw) {
	case FormatHTML, FormatMarkdown, FormatPlain:
		return Format(raw)
	default:
		return FormatHTML
	}
}
