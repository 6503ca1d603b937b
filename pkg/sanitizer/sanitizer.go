package sanitizer

import (
	"bytes"
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/contentkit/customfields/pkg/field"
)

var (
	strictPolicy  *bluemonday.Policy
	contentPolicy *bluemonday.Policy
	markdown      goldmark.Markdown
	initOnce      sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// strictPolicy strips ALL HTML, returns plain text.
		strictPolicy = bluemonday.StrictPolicy()

		// contentPolicy allows the formatting administrators and editors
		// legitimately produce through rich-text editors. Scripts, event
		// handlers, and javascript: URLs are always stripped.
		contentPolicy = bluemonday.UGCPolicy()
		contentPolicy.AllowAttrs("class").OnElements("code", "pre", "span", "div")
		contentPolicy.RequireNoFollowOnLinks(true)

		markdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
}

// Render converts a stored value into sanitized HTML according to its format.
func Render(value string, format field.Format) string {
	initPolicies()
	switch format {
	case field.FormatMarkdown:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(value), &buf); err != nil {
			// Malformed markdown degrades to escaped plain text.
			return html.EscapeString(value)
		}
		return contentPolicy.Sanitize(buf.String())
	case field.FormatPlain:
		return html.EscapeString(value)
	default:
		return contentPolicy.Sanitize(value)
	}
}

// SanitizeHTML applies the content policy to raw HTML without any format
// interpretation. Used when loading stored editor content back into a form.
func SanitizeHTML(s string) string {
	initPolicies()
	return contentPolicy.Sanitize(s)
}

// StripTags removes all HTML, returning only text content.
func StripTags(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// Custom applies a caller-supplied bluemonday policy.
// Returns input unchanged if policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
