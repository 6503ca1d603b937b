package store

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/contentkit/customfields/pkg/field"
)

var _ Store = (*Memory)(nil)

// Memory is an in-process Store for tests, examples, and small deployments.
type Memory struct {
	categories map[string]*field.Category
	fields     map[string]*field.Field
	data       map[string]*field.Data
	mu         sync.RWMutex
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		categories: make(map[string]*field.Category),
		fields:     make(map[string]*field.Field),
		data:       make(map[string]*field.Data),
	}
}

func (m *Memory) Definitions(_ context.Context, scope field.Scope) ([]*field.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var cats []*field.Category
	for _, c := range m.categories {
		if c.Scope == scope {
			cats = append(cats, cloneCategory(c))
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].CreatedAt.Before(cats[j].CreatedAt)
	})

	for _, c := range cats {
		c.Fields = m.fieldsOfLocked(c.ID)
	}
	return cats, nil
}

// fieldsOfLocked collects cloned fields of a category. Caller holds mu.
func (m *Memory) fieldsOfLocked(categoryID string) []*field.Field {
	var out []*field.Field
	for _, f := range m.fields {
		if f.CategoryID == categoryID {
			out = append(out, cloneField(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (m *Memory) CategoryNameExists(_ context.Context, scope field.Scope, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.categories {
		if c.Scope == scope && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) SaveCategory(_ context.Context, c *field.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.Scope == c.Scope && existing.Name == c.Name && existing.ID != c.ID {
			return errors.Join(field.ErrValidation, ErrDuplicateName)
		}
	}

	c.UpdatedAt = time.Now()
	saved := cloneCategory(c)
	saved.Fields = nil
	m.categories[c.ID] = saved
	return nil
}

func (m *Memory) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)

	for fid, f := range m.fields {
		if f.CategoryID == id {
			delete(m.fields, fid)
			m.deleteDataOfLocked(fid)
		}
	}
	return nil
}

func (m *Memory) SaveField(_ context.Context, f *field.Field) error {
	if err := f.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[f.CategoryID]; !ok {
		return ErrNotFound
	}
	for _, existing := range m.fields {
		if existing.Scope == f.Scope && existing.ShortName == f.ShortName && existing.ID != f.ID {
			return errors.Join(field.ErrValidation, ErrDuplicateName)
		}
	}

	f.UpdatedAt = time.Now()
	m.fields[f.ID] = cloneField(f)
	return nil
}

func (m *Memory) DeleteField(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fields[id]; !ok {
		return ErrNotFound
	}
	delete(m.fields, id)
	m.deleteDataOfLocked(id)
	return nil
}

// deleteDataOfLocked removes data rows of a field. Caller holds mu.
func (m *Memory) deleteDataOfLocked(fieldID string) {
	for did, d := range m.data {
		if d.FieldID == fieldID {
			delete(m.data, did)
		}
	}
}

func (m *Memory) FieldByShortName(_ context.Context, scope field.Scope, shortName string) (*field.Field, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.fields {
		if f.Scope == scope && f.ShortName == shortName {
			return cloneField(f), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FieldsWithData(ctx context.Context, scope field.Scope, recordID int64) ([]Entry, error) {
	cats, err := m.Definitions(ctx, scope)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for _, c := range cats {
		for _, f := range c.Fields {
			entries = append(entries, Entry{
				Field: f,
				Data:  m.dataForLocked(f.ID, recordID),
			})
		}
	}
	return entries, nil
}

// dataForLocked returns a cloned data row or nil. Caller holds mu.
func (m *Memory) dataForLocked(fieldID string, recordID int64) *field.Data {
	for _, d := range m.data {
		if d.FieldID == fieldID && d.RecordID == recordID {
			return cloneData(d)
		}
	}
	return nil
}

func (m *Memory) Data(_ context.Context, fieldID string, recordID int64) (*field.Data, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d := m.dataForLocked(fieldID, recordID); d != nil {
		return d, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) SaveData(_ context.Context, d *field.Data) error {
	if err := d.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d.UpdatedAt = time.Now()
	m.data[d.ID] = cloneData(d)
	return nil
}

func (m *Memory) DeleteData(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[id]; !ok {
		return ErrNotFound
	}
	delete(m.data, id)
	return nil
}

func (m *Memory) DeleteOrphanData(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, d := range m.data {
		if _, ok := m.fields[d.FieldID]; !ok {
			delete(m.data, id)
			removed++
		}
	}
	return removed, nil
}

// Clone helpers keep callers from mutating stored state through returned
// pointers.

func cloneCategory(c *field.Category) *field.Category {
	cp := *c
	cp.Fields = nil
	return &cp
}

func cloneField(f *field.Field) *field.Field {
	cp := *f
	cp.Config = maps.Clone(f.Config)
	return &cp
}

func cloneData(d *field.Data) *field.Data {
	cp := *d
	return &cp
}
