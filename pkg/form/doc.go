// Package form provides the form model the custom-fields handlers build
// edit forms against.
//
// A [Form] is an ordered list of named elements (headers, inputs,
// editors, selects, ...) plus validation rules. Handlers append elements
// per field, set defaults when loading stored values, mark required
// fields, and freeze everything when the caller lacks edit permission:
//
//	f := form.New()
//	f.AddHeader("category_general", "General")
//	el := f.AddElement(form.KindText, "customfield_summary", "Summary")
//	f.Require(el.Name, "Summary is required")
//	f.SetDefault(el.Name, "previous value")
//
// Submitted values are checked with [Form.Validate], which returns a
// [ValidationErrors] map keyed by element name.
//
// Forms render to HTML through a templ-compatible component
// ([Form.Component]), so they can be embedded in any templ or
// html/template page that accepts a component.
package form
