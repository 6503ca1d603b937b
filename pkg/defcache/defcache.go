package defcache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/contentkit/customfields/pkg/field"
)

// Cache holds per-scope snapshots of custom-field definitions (categories
// with their fields). The registry never caches definitions itself; the
// host application supplies whichever backend fits its deployment and owns
// its lifecycle.
//
// TTL semantics for Set:
//   - Positive duration: snapshot expires after this duration
//   - Zero: use the backend's configured default TTL
//   - Negative: snapshot never expires (until invalidated)
type Cache interface {
	// Get returns the cached snapshot for a scope.
	// Returns ErrNotFound when the scope is absent or expired.
	Get(ctx context.Context, scope field.Scope) ([]*field.Category, error)

	// Set stores a snapshot for a scope with the given TTL.
	Set(ctx context.Context, scope field.Scope, defs []*field.Category, ttl time.Duration) error

	// Invalidate drops the snapshot for a scope. Called after every
	// configuration write so readers never see stale structure.
	Invalidate(ctx context.Context, scope field.Scope) error

	// Close releases backend resources.
	Close() error
}

// Loader computes a fresh definitions snapshot on a cache miss.
type Loader func(ctx context.Context) ([]*field.Category, time.Duration, error)

// Group collapses concurrent snapshot loads for one cache instance. Each
// registry owns its own Group, so two registries whose scopes collide
// never join each other's in-flight loads. The zero value is ready to
// use; do not copy a Group after first use.
type Group struct {
	flight singleflight.Group
}

// GetOrLoad returns the cached snapshot for a scope, calling load on a
// miss. Concurrent misses for the same scope within the group are
// collapsed into a single load so a burst of readers after an
// invalidation hits the store once. Load errors are returned uncached.
func (g *Group) GetOrLoad(ctx context.Context, c Cache, scope field.Scope, load Loader) ([]*field.Category, error) {
	if defs, err := c.Get(ctx, scope); err == nil {
		return defs, nil
	}

	v, err, _ := g.flight.Do(scope.String(), func() (any, error) {
		defs, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		// Best effort: a failed Set only costs the next reader a reload.
		_ = c.Set(ctx, scope, defs, ttl)
		return defs, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*field.Category), nil
}
