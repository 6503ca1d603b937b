package internal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/internal"
	"github.com/contentkit/customfields/pkg/authz"
	"github.com/contentkit/customfields/pkg/defcache"
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/notify"
	"github.com/contentkit/customfields/pkg/store"
)

// testBinding is a configurable stand-in for a content type.
type testBinding struct {
	tree       *authz.Tree
	canConfig  bool
	canEdit    bool
	viewHidden bool
	configURL  string
}

func newTestBinding() *testBinding {
	return &testBinding{
		tree:      authz.NewTree(),
		canConfig: true,
		canEdit:   true,
		configURL: "/admin/customfields",
	}
}

func (b *testBinding) ConfigContext(context.Context) (*authz.Context, error) {
	return b.tree.System(), nil
}

func (b *testBinding) ConfigURL() string { return b.configURL }

func (b *testBinding) DataContext(context.Context, int64) (*authz.Context, error) {
	return b.tree.System(), nil
}

func (b *testBinding) CanConfigure(context.Context) bool { return b.canConfig }

func (b *testBinding) CanEdit(context.Context, int64) bool { return b.canEdit }

func (b *testBinding) CanView(_ context.Context, f *field.Field, _ int64) bool {
	switch f.Visibility {
	case field.VisibilityEveryone:
		return true
	case field.VisibilityEditors:
		return b.canEdit
	default:
		return b.viewHidden
	}
}

type testEnv struct {
	registry *internal.Registry
	store    *store.Memory
	notices  *notify.Recorder
	binding  *testBinding
}

func newTestEnv(t *testing.T, regOpts ...internal.RegisterOption) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	cache := defcache.NewMemory(defcache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = cache.Close() })

	notices := notify.NewRecorder()
	binding := newTestBinding()

	r := internal.NewRegistry(mem, cache, internal.WithNotifier(notices))
	require.NoError(t, r.Register("core_course", "course", binding, regOpts...))

	return &testEnv{registry: r, store: mem, notices: notices, binding: binding}
}

func (e *testEnv) handler(t *testing.T) *internal.Handler {
	t.Helper()
	h, err := e.registry.Handler(context.Background(), "core_course", "course", 0)
	require.NoError(t, err)
	return h
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	mem := store.NewMemory()
	cache := defcache.NewMemory(defcache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = cache.Close() })
	r := internal.NewRegistry(mem, cache)
	b := newTestBinding()

	tests := []struct {
		name      string
		component string
		area      string
		wantErr   error
	}{
		{name: "invalid component", component: "Core-Course", area: "course", wantErr: field.ErrInvalidComponent},
		{name: "empty component", component: "", area: "course", wantErr: field.ErrInvalidComponent},
		{name: "invalid area", component: "core_course", area: "My Area", wantErr: field.ErrInvalidArea},
		{name: "valid", component: "core_course", area: "course"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.component, tt.area, b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.registry.Register("core_course", "course", newTestBinding())
	assert.ErrorIs(t, err, internal.ErrDuplicateHandler)
}

func TestHandlerUnknown(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.registry.Handler(context.Background(), "core_course", "module", 0)
	assert.ErrorIs(t, err, internal.ErrUnknownHandler)
}

func TestHandlerItemIDNotSupported(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.registry.Handler(context.Background(), "core_course", "course", 7)
	assert.ErrorIs(t, err, internal.ErrItemIDNotSupported)
}

func TestHandlerItemIDSupported(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.registry.Register("core_org", "workspace", env.binding, internal.WithItemID()))

	h7, err := env.registry.Handler(context.Background(), "core_org", "workspace", 7)
	require.NoError(t, err)
	h9, err := env.registry.Handler(context.Background(), "core_org", "workspace", 9)
	require.NoError(t, err)

	assert.NotSame(t, h7, h9)
	assert.EqualValues(t, 7, h7.Scope().ItemID)
}

func TestHandlerMemoized(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	a := env.handler(t)
	b := env.handler(t)
	assert.Same(t, a, b)
}

func TestHandlerForFieldAndCategory(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := env.handler(t)

	cat, err := h.NewCategory(context.Background())
	require.NoError(t, err)

	hc, err := env.registry.HandlerForCategory(context.Background(), cat)
	require.NoError(t, err)
	assert.Same(t, h, hc)

	f, err := h.NewField(cat, "text")
	require.NoError(t, err)

	hf, err := env.registry.HandlerForField(context.Background(), f)
	require.NoError(t, err)
	assert.Same(t, h, hf)
}
