// Package field defines the data model for the custom-fields subsystem:
// scopes, categories, field definitions, and per-record field data.
//
// A [Scope] identifies where a set of custom fields applies. It is a
// (component, area, itemid) triple: the component is the owning feature
// (e.g. "core_course"), the area is the feature surface the fields attach
// to (e.g. "course"), and the item id scopes fields to a sub-instance
// (zero for global).
//
// Within a scope, fields are grouped into named categories:
//
//	Scope 1-* Category 1-* Field 1-* Data (one row per record)
//
// A [Field] is a typed, configurable attribute declared by an
// administrator; its Config blob carries type-specific settings
// interpreted by the matching field-type controller (see
// [github.com/contentkit/customfields/pkg/fieldtype]). A [Data] row holds
// one field's value for one host record.
//
// All entities validate themselves before being persisted; validation
// failures are reported as domain errors wrapping [ErrValidation] and can
// be detected with errors.Is:
//
//	if err := cat.Validate(); errors.Is(err, field.ErrValidation) {
//	    // reject user input
//	}
package field
