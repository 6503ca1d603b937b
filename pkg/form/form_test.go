package form_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/form"
)

func TestAddElementAndLookup(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddHeader("section", "Section")
	f.AddElement(form.KindText, "title", "Title", form.WithDefault("hello"))

	el, ok := f.Element("title")
	require.True(t, ok)
	assert.Equal(t, form.KindText, el.Kind)
	assert.Equal(t, "hello", el.Default)

	_, ok = f.Element("missing")
	assert.False(t, ok)

	assert.Len(t, f.Elements(), 2)
}

func TestDuplicateElementPanics(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddElement(form.KindText, "title", "Title")
	assert.Panics(t, func() {
		f.AddElement(form.KindText, "title", "Again")
	})
}

func TestSetDefaultUnknownElement(t *testing.T) {
	t.Parallel()

	f := form.New()
	err := f.SetDefault("missing", "v")
	require.ErrorIs(t, err, form.ErrUnknownElement)

	err = f.Require("missing", "msg")
	require.ErrorIs(t, err, form.ErrUnknownElement)
}

func TestValidateRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  map[string]any
		wantErr bool
	}{
		{
			name:   "all present",
			values: map[string]any{"title": "x", "due": int64(1700000000)},
		},
		{
			name:    "missing title",
			values:  map[string]any{"due": int64(1700000000)},
			wantErr: true,
		},
		{
			name:    "empty title",
			values:  map[string]any{"title": "", "due": int64(1700000000)},
			wantErr: true,
		},
		{
			name:    "zero date",
			values:  map[string]any{"title": "x", "due": int64(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := form.New()
			f.AddElement(form.KindText, "title", "Title")
			f.AddElement(form.KindDate, "due", "Due date")
			require.NoError(t, f.Require("title", "Title is required"))
			require.NoError(t, f.Require("due", "Due date is required"))

			errs := f.Validate(tt.values)
			if tt.wantErr {
				require.NotNil(t, errs)
				return
			}
			assert.Nil(t, errs)
		})
	}
}

func TestValidateRequiredCheckbox(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddElement(form.KindCheckbox, "agree", "Agree")
	require.NoError(t, f.Require("agree", "must answer"))

	// An unchecked checkbox is an answer, not a missing value.
	assert.Nil(t, f.Validate(map[string]any{"agree": false}))
}

func TestValidateRequiredEditorComposite(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddElement(form.KindEditor, "body", "Body")
	require.NoError(t, f.Require("body", "body required"))

	errs := f.Validate(map[string]any{"body": map[string]any{"text": "", "format": 0}})
	require.NotNil(t, errs)
	assert.True(t, errs.Has("body"))

	assert.Nil(t, f.Validate(map[string]any{"body": map[string]any{"text": "hello", "format": 0}}))
}

func TestValidateSkipsFrozen(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddElement(form.KindText, "title", "Title")
	require.NoError(t, f.Require("title", "required"))
	f.Freeze("title")

	assert.Nil(t, f.Validate(map[string]any{}), "frozen controls are exempt from required rules")
}

func TestFreezeAll(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddHeader("h", "Header")
	f.AddElement(form.KindText, "a", "A")
	f.AddElement(form.KindCheckbox, "b", "B")
	f.FreezeAll()

	for _, el := range f.Elements() {
		if el.Kind == form.KindHeader {
			assert.False(t, el.Frozen, "headers are never frozen")
			continue
		}
		assert.True(t, el.Frozen, el.Name)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	f := form.New()
	f.AddHeader("cat_general", "General")
	f.AddElement(form.KindText, "title", "Title", form.WithDefault(`va"lue`))
	f.AddElement(form.KindSelect, "color", "Color", form.WithOptions("red", "green"), form.WithDefault("green"))
	f.AddElement(form.KindCheckbox, "done", "Done", form.WithDefault(true))
	require.NoError(t, f.Require("title", "required"))
	f.Freeze("done")

	var b strings.Builder
	require.NoError(t, f.Component().Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, "<legend>General</legend>")
	assert.Contains(t, out, `va&#34;lue`, "defaults are escaped")
	assert.Contains(t, out, `<option value="green" selected>`)
	assert.Contains(t, out, "cf-required", "required marker rendered")
	assert.Contains(t, out, "checked disabled", "frozen checkbox renders disabled")
	assert.NotContains(t, out, `va"lue`)
}
