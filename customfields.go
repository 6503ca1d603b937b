package customfields

import (
	"github.com/contentkit/customfields/internal"
	"github.com/contentkit/customfields/pkg/defcache"
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/fieldtype"
	"github.com/contentkit/customfields/pkg/store"
)

// Type aliases - public API
type (
	// Registry is the subsystem's entry point: content types register
	// their areas, request code resolves handlers.
	Registry = internal.Registry

	// Handler serves one (component, area, itemID) scope.
	Handler = internal.Handler

	// Binding is what a content type supplies when registering an area.
	Binding = internal.Binding

	// ConfigFormContributor lets bindings add controls to field
	// configuration forms.
	ConfigFormContributor = internal.ConfigFormContributor

	// Option configures a Registry.
	Option = internal.Option

	// RegisterOption tweaks one area registration.
	RegisterOption = internal.RegisterOption

	// FieldExport is one field value in webservice shape.
	FieldExport = internal.FieldExport

	// RestoreEntry is one backed-up field value keyed by short name.
	RestoreEntry = internal.RestoreEntry

	// Scope is the (component, area, itemID) triple identifying an area.
	Scope = field.Scope

	// Category groups field definitions within a scope.
	Category = field.Category

	// Field is one typed, configurable attribute.
	Field = field.Field

	// Data holds one field's value for one host record.
	Data = field.Data

	// Visibility controls who sees a field's value.
	Visibility = field.Visibility

	// Controller handles one field's form wiring and value marshaling.
	Controller = fieldtype.Controller

	// Store is the persistence boundary.
	Store = store.Store

	// DefinitionsCache holds per-scope definition snapshots.
	DefinitionsCache = defcache.Cache
)

// Visibility levels.
const (
	VisibilityHidden   = field.VisibilityHidden
	VisibilityEditors  = field.VisibilityEditors
	VisibilityEveryone = field.VisibilityEveryone
)

// Sentinel errors re-exported for errors.Is checks in host code.
var (
	ErrUnknownHandler        = internal.ErrUnknownHandler
	ErrDuplicateHandler      = internal.ErrDuplicateHandler
	ErrItemIDNotSupported    = internal.ErrItemIDNotSupported
	ErrCategoryNameExhausted = internal.ErrCategoryNameExhausted
	ErrUnknownFieldType      = internal.ErrUnknownFieldType
	ErrNotConfigurable       = internal.ErrNotConfigurable
	ErrValidation            = field.ErrValidation
)

// New creates a registry backed by the given store and definitions cache.
//
// Example:
//
//	cache := defcache.NewMemory()
//	defer cache.Close()
//
//	reg := customfields.New(store.NewMemory(), cache,
//	    customfields.WithLogger(log),
//	)
//	if err := reg.Register("core_course", "course", courseBinding); err != nil {
//	    return err
//	}
func New(s Store, c DefinitionsCache, opts ...Option) *Registry {
	return internal.NewRegistry(s, c, opts...)
}

// Registry options.
var (
	WithLogger         = internal.WithLogger
	WithNotifier       = internal.WithNotifier
	WithTranslator     = internal.WithTranslator
	WithLanguage       = internal.WithLanguage
	WithFieldTypes     = internal.WithFieldTypes
	WithDefinitionsTTL = internal.WithDefinitionsTTL
)

// Registration options.
var (
	WithItemID        = internal.WithItemID
	WithoutCategories = internal.WithoutCategories
)
