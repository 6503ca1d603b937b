package authz

import "context"

// Checker answers boolean capability checks scoped to a context.
// The host application supplies the real implementation; the subsystem
// only asks questions.
type Checker interface {
	Can(ctx context.Context, capability string, in *Context) bool
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, capability string, in *Context) bool

func (f CheckerFunc) Can(ctx context.Context, capability string, in *Context) bool {
	return f(ctx, capability, in)
}

// AllowAll grants every capability. Useful in tests and trusted CLIs.
func AllowAll() Checker {
	return CheckerFunc(func(context.Context, string, *Context) bool { return true })
}

// DenyAll refuses every capability.
func DenyAll() Checker {
	return CheckerFunc(func(context.Context, string, *Context) bool { return false })
}

// Grants is a static capability set keyed by capability name, ignoring
// context. Enough for tests and simple single-role hosts.
type Grants map[string]bool

func (g Grants) Can(_ context.Context, capability string, _ *Context) bool {
	return g[capability]
}
