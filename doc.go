// Package customfields lets host applications attach administrator-defined,
// typed fields to their own records without schema changes.
//
// A content type (courses, organizations, tickets) registers an area with
// the [Registry], supplying a [Binding] that answers permission and context
// questions. Administrators then define categories and fields for the area;
// end users edit and view per-record values through forms the handler
// builds.
//
// # Quick start
//
//	cache := defcache.NewMemory()
//	defer cache.Close()
//
//	reg := customfields.New(store.NewMemory(), cache)
//	if err := reg.Register("core_course", "course", courseBinding); err != nil {
//	    log.Fatal(err)
//	}
//
//	h, err := reg.Handler(ctx, "core_course", "course", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frm := form.New()
//	if err := h.AddToForm(ctx, frm, courseID); err != nil {
//	    log.Fatal(err)
//	}
//	if err := h.FillForm(ctx, frm, courseID); err != nil {
//	    log.Fatal(err)
//	}
//
// # Field types
//
// Text, textarea (rich text with format normalization and sanitization),
// select, checkbox, date, and file ship built in; register more through
// [WithFieldTypes]. Each type implements [Controller], which owns form
// wiring, value marshaling, display rendering, and export shape.
//
// # Persistence
//
// The [Store] interface decouples the engine from storage. pkg/store ships
// a memory implementation for tests and a PostgreSQL implementation with
// embedded migrations. Definition snapshots are cached per scope through
// the caller-supplied [DefinitionsCache].
package customfields
