package internal

import (
	"context"

	"github.com/contentkit/customfields/pkg/authz"
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/form"
)

// Binding is what a content type supplies when it registers an area for
// custom fields. It answers the questions the engine cannot answer itself:
// where configuration lives, which permission hierarchy node a record
// belongs to, and who may do what.
//
// Implementations must be safe for concurrent use; one binding instance
// serves every handler of its (component, area).
type Binding interface {
	// ConfigContext returns the context the field configuration is stored
	// and permission-checked in, typically the system context.
	ConfigContext(ctx context.Context) (*authz.Context, error)

	// ConfigURL returns the URL of the configuration page for admin UIs.
	ConfigURL() string

	// DataContext returns the context a record's field values are captured
	// in. recordID is zero when a record is still being created.
	DataContext(ctx context.Context, recordID int64) (*authz.Context, error)

	// CanConfigure reports whether the current user may create, change and
	// delete field definitions and categories.
	CanConfigure(ctx context.Context) bool

	// CanEdit reports whether the current user may edit field values on the
	// given record. recordID is zero for new records.
	CanEdit(ctx context.Context, recordID int64) bool

	// CanView reports whether the current user may see the field's value on
	// the given record, honoring the field's visibility setting.
	CanView(ctx context.Context, f *field.Field, recordID int64) bool
}

// ConfigFormContributor is implemented by bindings that add content-type
// specific controls to the field configuration form, beyond the common
// section and the field type's own controls.
type ConfigFormContributor interface {
	ConfigFormControls(frm *form.Form, f *field.Field)
}
