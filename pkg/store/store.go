package store

import (
	"context"

	"github.com/contentkit/customfields/pkg/field"
)

// Entry pairs a field definition with its data row for one record.
// Data is nil when the record has no value for the field yet.
type Entry struct {
	Field *field.Field
	Data  *field.Data
}

// Store is the persistence boundary for custom-field configuration and
// per-record values. Implementations must be safe for concurrent use.
type Store interface {
	// Definitions returns the categories of a scope ordered by sort order,
	// each with its fields populated and ordered.
	Definitions(ctx context.Context, scope field.Scope) ([]*field.Category, error)

	// CategoryNameExists reports whether a category with the given name
	// already exists within the scope.
	CategoryNameExists(ctx context.Context, scope field.Scope, name string) (bool, error)

	// SaveCategory validates and persists a category (insert or update).
	// A name collision within the scope fails with ErrDuplicateName joined
	// onto field.ErrValidation.
	SaveCategory(ctx context.Context, c *field.Category) error

	// DeleteCategory removes a category, its fields, and their data rows.
	DeleteCategory(ctx context.Context, id string) error

	// SaveField validates and persists a field definition (insert or update).
	// A short-name collision within the scope fails with ErrDuplicateName
	// joined onto field.ErrValidation.
	SaveField(ctx context.Context, f *field.Field) error

	// DeleteField removes a field definition and its data rows.
	DeleteField(ctx context.Context, id string) error

	// FieldByShortName returns the field with the given short name within
	// the scope, or ErrNotFound.
	FieldByShortName(ctx context.Context, scope field.Scope, shortName string) (*field.Field, error)

	// FieldsWithData returns every field of the scope paired with the
	// record's data row (nil when absent), ordered by category and field
	// sort order.
	FieldsWithData(ctx context.Context, scope field.Scope, recordID int64) ([]Entry, error)

	// Data returns the data row for a (field, record) pair, or ErrNotFound.
	Data(ctx context.Context, fieldID string, recordID int64) (*field.Data, error)

	// SaveData validates and persists a data row (insert or update).
	SaveData(ctx context.Context, d *field.Data) error

	// DeleteData removes a data row.
	DeleteData(ctx context.Context, id string) error

	// DeleteOrphanData removes data rows whose field definition no longer
	// exists and returns the number of rows removed. Used by the
	// maintenance sweeper.
	DeleteOrphanData(ctx context.Context) (int64, error)
}
