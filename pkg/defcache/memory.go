package defcache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/contentkit/customfields/pkg/field"
)

type memEntry struct {
	expiresAt time.Time // zero value = never expires
	defs      []*field.Category
	key       string
}

func (e *memEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// Memory caches definition snapshots in process memory with TTL expiry
// and LRU eviction once maxScopes is reached. Suitable for single-node
// deployments and tests; multi-node hosts should use Redis so an
// invalidation on one node is seen by all.
type Memory struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates an in-memory definitions cache.
//
// Example:
//
//	c := defcache.NewMemory(
//	    defcache.WithDefaultTTL(5 * time.Minute),
//	    defcache.WithMaxScopes(1000),
//	)
//	defer c.Close()
func NewMemory(opts ...MemoryOption) *Memory {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}

	if o.cleanupInterval > 0 {
		go m.janitor()
	}

	return m
}

// Get returns the snapshot for a scope, marking it recently used.
func (m *Memory) Get(_ context.Context, scope field.Scope) ([]*field.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[scope.String()]
	if !ok {
		return nil, ErrNotFound
	}

	e := elem.Value.(*memEntry)
	if e.expired() {
		m.removeElement(elem)
		return nil, ErrNotFound
	}

	m.eviction.MoveToFront(elem)

	return e.defs, nil
}

// Set stores a snapshot for a scope.
func (m *Memory) Set(_ context.Context, scope field.Scope, defs []*field.Category, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	key := scope.String()
	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memEntry)
		e.defs = defs
		e.expiresAt = expiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.opts.maxScopes > 0 && len(m.items) >= m.opts.maxScopes {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	elem := m.eviction.PushFront(&memEntry{key: key, defs: defs, expiresAt: expiresAt})
	m.items[key] = elem

	return nil
}

// Invalidate drops the snapshot for a scope.
func (m *Memory) Invalidate(_ context.Context, scope field.Scope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[scope.String()]; ok {
		m.removeElement(elem)
	}

	return nil
}

// Close stops the janitor goroutine. Idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)

	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memEntry).expired() {
			m.removeElement(elem)
		}
		elem = prev
	}
}

// Caller must hold the mutex.
func (m *Memory) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*memEntry).key)
}

var _ Cache = (*Memory)(nil)
