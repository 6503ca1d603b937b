package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/contentkit/customfields/pkg/defcache"
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/fieldtype"
	"github.com/contentkit/customfields/pkg/i18n"
	"github.com/contentkit/customfields/pkg/logger"
	"github.com/contentkit/customfields/pkg/notify"
	"github.com/contentkit/customfields/pkg/store"
)

// registration binds a (component, area) pair to its content type.
type registration struct {
	binding        Binding
	component      string
	area           string
	usesItemID     bool
	usesCategories bool
}

// Registry is the subsystem's entry point. Content types register their
// areas during startup; request code resolves handlers through it.
//
// The registry owns no persistent state of its own: the store and the
// definitions cache are supplied by the host, which also controls their
// lifecycle and shutdown order.
type Registry struct {
	store    store.Store
	cache    defcache.Cache
	types    *fieldtype.Registry
	notifier notify.Notifier
	tr       *i18n.Translator
	lang     string
	log      *slog.Logger
	defsTTL  time.Duration
	loads    defcache.Group

	mu            sync.RWMutex
	registrations map[string]*registration
	handlers      map[string]*Handler
}

// NewRegistry creates a registry backed by the given store and definitions
// cache.
func NewRegistry(s store.Store, c defcache.Cache, opts ...Option) *Registry {
	r := &Registry{
		store:         s,
		cache:         c,
		types:         fieldtype.NewRegistry(),
		log:           logger.NewNop(),
		lang:          "en",
		defsTTL:       10 * time.Minute,
		registrations: make(map[string]*registration),
		handlers:      make(map[string]*Handler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tr == nil {
		r.tr = defaultTranslator()
	}
	if r.notifier == nil {
		r.notifier = notify.Slog(r.log)
	}
	return r
}

// RegisterOption tweaks one registration.
type RegisterOption func(*registration)

// WithItemID declares that the area partitions its fields by item id,
// e.g. one field set per organization. Off by default.
func WithItemID() RegisterOption {
	return func(reg *registration) {
		reg.usesItemID = true
	}
}

// WithoutCategories declares that the area does not expose category
// management; a single default category is maintained automatically.
func WithoutCategories() RegisterOption {
	return func(reg *registration) {
		reg.usesCategories = false
	}
}

// Register binds a content type to a (component, area) pair. Invalid names
// and duplicate pairs are programmer errors and fail immediately.
func (r *Registry) Register(component, area string, b Binding, opts ...RegisterOption) error {
	if !field.ValidName(component) {
		return errors.Join(field.ErrInvalidComponent, fmt.Errorf("component %q", component))
	}
	if !field.ValidName(area) {
		return errors.Join(field.ErrInvalidArea, fmt.Errorf("area %q", area))
	}
	if b == nil {
		return fmt.Errorf("customfields: nil binding for %s/%s", component, area)
	}

	reg := &registration{
		binding:        b,
		component:      component,
		area:           area,
		usesCategories: true,
	}
	for _, opt := range opts {
		opt(reg)
	}

	key := component + "/" + area

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[key]; exists {
		return errors.Join(ErrDuplicateHandler, fmt.Errorf("%s", key))
	}
	r.registrations[key] = reg

	r.log.Info("custom field area registered",
		slog.String("component", component),
		slog.String("area", area),
		slog.Bool("uses_itemid", reg.usesItemID),
		slog.Bool("uses_categories", reg.usesCategories))

	return nil
}

// Handler returns the handler for a (component, area, itemID) scope.
// Handlers are memoized per scope; the same triple yields the same
// instance for the registry's lifetime.
func (r *Registry) Handler(ctx context.Context, component, area string, itemID int64) (*Handler, error) {
	scope, err := field.NewScope(component, area, itemID)
	if err != nil {
		return nil, err
	}

	key := scope.String()

	r.mu.RLock()
	if h, ok := r.handlers[key]; ok {
		r.mu.RUnlock()
		return h, nil
	}
	reg, ok := r.registrations[component+"/"+area]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Join(ErrUnknownHandler, fmt.Errorf("%s/%s", component, area))
	}
	if itemID != 0 && !reg.usesItemID {
		return nil, errors.Join(ErrItemIDNotSupported, fmt.Errorf("%s/%s item id %d", component, area, itemID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handlers[key]; ok {
		return h, nil
	}
	h := &Handler{scope: scope, reg: reg, r: r}
	r.handlers[key] = h
	return h, nil
}

// HandlerForField returns the handler owning a field definition.
func (r *Registry) HandlerForField(ctx context.Context, f *field.Field) (*Handler, error) {
	return r.Handler(ctx, f.Scope.Component, f.Scope.Area, f.Scope.ItemID)
}

// HandlerForCategory returns the handler owning a category.
func (r *Registry) HandlerForCategory(ctx context.Context, c *field.Category) (*Handler, error) {
	return r.Handler(ctx, c.Scope.Component, c.Scope.Area, c.Scope.ItemID)
}

// Types exposes the field-type registry, e.g. for "add a field" menus.
func (r *Registry) Types() *fieldtype.Registry {
	return r.types
}

// Store exposes the backing store for host glue such as maintenance jobs.
func (r *Registry) Store() store.Store {
	return r.store
}

func (r *Registry) t(key string, args map[string]string) string {
	return r.tr.T(r.lang, key, args)
}

func defaultTranslator() *i18n.Translator {
	tr, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithTranslations("en", map[string]string{
			"category.default":     "Other fields",
			"category.saved":       "Category {name} saved",
			"category.save_failed": "Category {name} could not be saved",
			"category.deleted":     "Category {name} deleted",
			"field.saved":          "Field {name} saved",
			"field.save_failed":    "Field {name} could not be saved",
			"field.deleted":        "Field {name} deleted",
			"field.required":       "{name} is required",
		}),
	)
	if err != nil {
		// Static tables cannot fail to load.
		panic(err)
	}
	return tr
}
