// Package internal implements the custom-fields engine: the registry that
// binds content types to (component, area) scopes and the handler that
// serves a scope's definitions, forms, values, export and restore.
//
// The root customfields package re-exports the public surface; host code
// should not import this package directly.
package internal
