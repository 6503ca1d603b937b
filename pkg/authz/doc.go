// Package authz defines the authorization surface the custom-fields
// subsystem needs from its host application: a hierarchical context tree
// and boolean capability checks scoped to a context.
//
// The subsystem never decides permissions itself. Content-type bindings
// translate "can this caller configure fields" into a capability name and
// a context, and a host-supplied [Checker] answers. [Tree] is a minimal
// in-process context hierarchy for hosts and tests that do not bring
// their own.
package authz
