// Package defcache caches per-scope custom-field definition snapshots.
//
// Reading definitions is by far the hottest path in the subsystem: every
// form render and every record display walks the categories and fields of
// a scope. The cache sits between the registry and the store, holding one
// snapshot per scope and dropping it whenever configuration changes.
//
// Two backends are provided. Memory keeps snapshots in process with TTL
// and LRU eviction, which fits single-node hosts and tests. Redis shares
// snapshots across nodes so an invalidation anywhere is seen everywhere.
// A Group collapses concurrent misses for the same scope into a single
// store read; each registry owns one, keeping independent registries'
// loads isolated even when their scopes collide.
//
// The registry takes the cache as a dependency rather than constructing
// one, so the host controls backend choice, sizing, and shutdown order.
package defcache
