package field

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Data holds one field's value for one host record.
type Data struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	ID      string
	FieldID string

	// Value is the generic string storage for the field's value. Field-type
	// controllers encode and decode their native representation through it.
	Value string

	// RecordID is the host record the value belongs to.
	RecordID int64

	// ContextID is the host application context the value was captured in,
	// supplied by the content type's binding for the record.
	ContextID int64

	// ValueFormat tags rich-text values (see Format). Zero for field types
	// that do not carry a format.
	ValueFormat int
}

// NewData builds an unsaved data row binding a field to a record.
func NewData(f *Field, recordID, contextID int64) *Data {
	now := time.Now()
	return &Data{
		ID:        uuid.NewString(),
		FieldID:   f.ID,
		RecordID:  recordID,
		ContextID: contextID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the data row before it is persisted.
func (d *Data) Validate() error {
	if d.FieldID == "" {
		return errors.Join(ErrValidation, errors.New("field: data row has no field id"))
	}
	if d.RecordID == 0 {
		return errors.Join(ErrValidation, errors.New("field: data row has no record id"))
	}
	return nil
}
