// Package store persists custom-field categories, field definitions, and
// per-record values.
//
// The [Store] interface is the persistence boundary of the subsystem:
// handlers retrieve and mutate records only through it and never hold
// long-lived references to what it returns. Two implementations ship:
//
//   - [Memory]: mutex-guarded in-process store for tests, examples, and
//     small deployments.
//   - [Postgres]: pgx-backed store with embedded goose migrations
//     ([Migrations]). Category-name uniqueness is enforced by a database
//     unique index, so concurrent creates cannot produce duplicates.
//
// Save operations validate entities first and report failures as domain
// errors wrapping [github.com/contentkit/customfields/pkg/field.ErrValidation].
// Lookups that find nothing return [ErrNotFound].
package store
