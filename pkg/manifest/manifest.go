// Package manifest provisions custom-field definitions from declarative
// YAML, so hosts can ship field configuration alongside code instead of
// clicking it together per environment. Apply is idempotent: existing
// categories and fields are matched by name and short name and updated in
// place.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/store"
)

var (
	// ErrParse is returned when the YAML document cannot be decoded.
	ErrParse = errors.New("manifest: failed to parse manifest")

	// ErrApply is returned when definitions cannot be persisted.
	ErrApply = errors.New("manifest: failed to apply manifest")
)

// Manifest declares the categories and fields of one scope.
type Manifest struct {
	Component  string     `yaml:"component"`
	Area       string     `yaml:"area"`
	ItemID     int64      `yaml:"itemid,omitempty"`
	Categories []Category `yaml:"categories"`
}

// Category declares one category and its fields.
type Category struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields"`
}

// Field declares one field definition.
type Field struct {
	Config      map[string]any `yaml:"config,omitempty"`
	Type        string         `yaml:"type"`
	ShortName   string         `yaml:"shortname"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Visibility  string         `yaml:"visibility,omitempty"`
	Required    bool           `yaml:"required,omitempty"`
}

// Parse decodes a manifest document.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return &m, nil
}

// Apply provisions the manifest's definitions into the store under the
// given configuration context. Categories match by name, fields by short
// name; matched rows are updated, missing ones created. Nothing is
// deleted.
func Apply(ctx context.Context, s store.Store, m *Manifest, configContextID int64) error {
	scope, err := field.NewScope(m.Component, m.Area, m.ItemID)
	if err != nil {
		return errors.Join(ErrApply, err)
	}

	existing, err := s.Definitions(ctx, scope)
	if err != nil {
		return errors.Join(ErrApply, err)
	}

	catsByName := make(map[string]*field.Category, len(existing))
	fieldsByShortName := make(map[string]*field.Field)
	for _, cat := range existing {
		catsByName[cat.Name] = cat
		for _, f := range cat.Fields {
			fieldsByShortName[f.ShortName] = f
		}
	}

	for i, mc := range m.Categories {
		cat, ok := catsByName[mc.Name]
		if !ok {
			cat = field.NewCategory(scope, configContextID, mc.Name)
		}
		cat.Description = mc.Description
		cat.SortOrder = i
		if err := s.SaveCategory(ctx, cat); err != nil {
			return errors.Join(ErrApply, fmt.Errorf("category %q: %w", mc.Name, err))
		}

		for j, mf := range mc.Fields {
			f, ok := fieldsByShortName[mf.ShortName]
			if !ok {
				f = field.New(cat, mf.Type)
				f.ShortName = mf.ShortName
			}
			f.CategoryID = cat.ID
			f.Type = mf.Type
			f.Name = mf.Name
			f.Description = mf.Description
			f.Required = mf.Required
			f.SortOrder = j
			if mf.Visibility != "" {
				vis, err := field.ParseVisibility(mf.Visibility)
				if err != nil {
					return errors.Join(ErrApply, fmt.Errorf("field %q: %w", mf.ShortName, err))
				}
				f.Visibility = vis
			}
			for k, v := range mf.Config {
				f.Config[k] = v
			}
			if err := s.SaveField(ctx, f); err != nil {
				return errors.Join(ErrApply, fmt.Errorf("field %q: %w", mf.ShortName, err))
			}
		}
	}

	return nil
}

// Export captures a scope's current definitions as a manifest, the inverse
// of Apply.
func Export(ctx context.Context, s store.Store, scope field.Scope) (*Manifest, error) {
	defs, err := s.Definitions(ctx, scope)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		Component: scope.Component,
		Area:      scope.Area,
		ItemID:    scope.ItemID,
	}
	for _, cat := range defs {
		mc := Category{Name: cat.Name, Description: cat.Description}
		for _, f := range cat.Fields {
			mc.Fields = append(mc.Fields, Field{
				Type:        f.Type,
				ShortName:   f.ShortName,
				Name:        f.Name,
				Description: f.Description,
				Visibility:  f.Visibility.String(),
				Required:    f.Required,
				Config:      f.Config,
			})
		}
		m.Categories = append(m.Categories, mc)
	}
	return m, nil
}

// Write encodes a manifest as YAML.
func (m *Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
