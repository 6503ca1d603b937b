package authz

import (
	"errors"
	"sync"
)

// ErrUnknownContext is returned when a context id cannot be resolved.
var ErrUnknownContext = errors.New("authz: unknown context")

// Level positions a context in the host hierarchy.
type Level int

const (
	LevelSystem   Level = 10
	LevelCategory Level = 40
	LevelRecord   Level = 50
)

// Context is a node in the host's permission/location hierarchy.
type Context struct {
	Parent *Context

	ID int64

	// InstanceID is the host record the context is attached to
	// (zero for the system context).
	InstanceID int64

	Level Level
}

// IsSystem reports whether this is the root system context.
func (c *Context) IsSystem() bool {
	return c != nil && c.Level == LevelSystem
}

// Resolver looks contexts up by id, e.g. when re-hydrating stored data
// rows that remember the context they were captured in.
type Resolver interface {
	ContextByID(id int64) (*Context, error)
}

// Tree is a minimal in-process context hierarchy rooted at a system
// context. Safe for concurrent use.
type Tree struct {
	byID   map[int64]*Context
	system *Context
	mu     sync.RWMutex
	nextID int64
}

// NewTree creates a hierarchy with a fresh system context as id 1.
func NewTree() *Tree {
	system := &Context{ID: 1, Level: LevelSystem}
	return &Tree{
		system: system,
		byID:   map[int64]*Context{1: system},
		nextID: 2,
	}
}

// System returns the root context.
func (t *Tree) System() *Context {
	return t.system
}

// Add creates a context under the given parent. A nil parent attaches to
// the system context.
func (t *Tree) Add(parent *Context, level Level, instanceID int64) *Context {
	t.mu.Lock()
	defer t.mu.Unlock()

	if parent == nil {
		parent = t.system
	}
	c := &Context{ID: t.nextID, Level: level, InstanceID: instanceID, Parent: parent}
	t.nextID++
	t.byID[c.ID] = c
	return c
}

// ContextByID implements Resolver.
func (t *Tree) ContextByID(id int64) (*Context, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.byID[id]
	if !ok {
		return nil, ErrUnknownContext
	}
	return c, nil
}
