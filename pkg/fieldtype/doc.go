// Package fieldtype implements the per-type behavior of custom fields:
// form controls, value marshaling, and display rendering.
//
// A [Controller] wraps one field definition plus the data row of one host
// record. Handlers obtain controllers through a [Registry] and only ever
// iterate and delegate; everything type-specific (how a textarea splits
// its composite {text, format} value, how a select validates its option)
// lives here.
//
// The built-in types are text, textarea, select, checkbox, date, and
// file. Hosts can register their own:
//
//	reg := fieldtype.NewRegistry()
//	reg.Register(fieldtype.Type{
//	    Name: "color",
//	    New:  newColorController,
//	    ConfigControls: colorConfigControls,
//	})
//
// [Base] supplies the generic persistence-facing behavior; concrete
// controllers embed it and override what differs.
package fieldtype
