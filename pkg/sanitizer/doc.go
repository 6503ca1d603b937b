// Package sanitizer renders stored field values into safe HTML.
//
// Values arrive tagged with a format (HTML, Markdown, or plain text) and
// leave as sanitized HTML suitable for embedding in record display pages.
// HTML passes through a bluemonday policy, Markdown is rendered with
// goldmark first and then sanitized, and plain text is escaped verbatim.
//
//	out := sanitizer.Render("**bold**", field.FormatMarkdown)
//	// "<p><strong>bold</strong></p>"
//
// Use [StripTags] when only the text content is wanted, e.g. for
// webservice exports or search indexing.
package sanitizer
