package web

import "github.com/contentkit/customfields/pkg/field"

type categoryDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Fields      []fieldDTO `json:"fields"`
	SortOrder   int        `json:"sort_order"`
}

type fieldDTO struct {
	Config      map[string]any `json:"config,omitempty"`
	ID          string         `json:"id"`
	CategoryID  string         `json:"category_id"`
	Type        string         `json:"type"`
	ShortName   string         `json:"shortname"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Visibility  string         `json:"visibility"`
	SortOrder   int            `json:"sort_order"`
	Required    bool           `json:"required"`
}

func toCategoryDTO(c *field.Category) categoryDTO {
	fields := make([]fieldDTO, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, toFieldDTO(f))
	}
	return categoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		Fields:      fields,
	}
}

func toCategoryDTOs(defs []*field.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(defs))
	for _, c := range defs {
		out = append(out, toCategoryDTO(c))
	}
	return out
}

func toFieldDTO(f *field.Field) fieldDTO {
	return fieldDTO{
		ID:          f.ID,
		CategoryID:  f.CategoryID,
		Type:        f.Type,
		ShortName:   f.ShortName,
		Name:        f.Name,
		Description: f.Description,
		Visibility:  f.Visibility.String(),
		SortOrder:   f.SortOrder,
		Required:    f.Required,
		Config:      f.Config,
	}
}
