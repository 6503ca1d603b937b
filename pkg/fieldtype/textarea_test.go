package fieldtype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/fieldtype"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

func textareaEntry(t *testing.T, data *field.Data) store.Entry {
	t.Helper()

	scope, err := field.NewScope("core_course", "course", 0)
	require.NoError(t, err)
	cat := field.NewCategory(scope, 1, "General")
	f := field.New(cat, "textarea")
	f.ShortName = "summary"
	f.Name = "Summary"
	if data != nil {
		data.FieldID = f.ID
	}
	return store.Entry{Field: f, Data: data}
}

func TestTextareaSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctrl := fieldtype.NewTextarea(textareaEntry(t, nil), 5, 100)

	err := ctrl.PrepareSave(map[string]any{
		"text":   "<p>Hello <strong>world</strong></p>",
		"format": int(field.FormatHTML),
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello <strong>world</strong></p>", ctrl.Data().Value)
	assert.Equal(t, int(field.FormatHTML), ctrl.Data().ValueFormat)

	// Load the saved row back as if it came from the store.
	saved := ctrl.Data()
	loaded := fieldtype.NewTextarea(textareaEntry(t, saved), 5, 100)

	frm := form.New()
	require.NoError(t, loaded.AddToForm(frm))
	require.NoError(t, loaded.Fill(frm))

	el, ok := frm.Element("customfield_summary")
	require.True(t, ok)
	composite, ok := el.Default.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "<p>Hello <strong>world</strong></p>", composite["text"])
	assert.Equal(t, int(field.FormatHTML), composite["format"])
}

func TestTextareaLoadNormalizesFormatAndSanitizes(t *testing.T) {
	t.Parallel()

	data := &field.Data{
		RecordID:    5,
		Value:       `<p>ok</p><script>alert(1)</script>`,
		ValueFormat: 42, // unknown tag, normalizes to html
	}
	ctrl := fieldtype.NewTextarea(textareaEntry(t, data), 5, 100)

	frm := form.New()
	require.NoError(t, ctrl.AddToForm(frm))
	require.NoError(t, ctrl.Fill(frm))

	el, _ := frm.Element("customfield_summary")
	composite := el.Default.(map[string]any)
	assert.Equal(t, int(field.FormatHTML), composite["format"])
	assert.NotContains(t, composite["text"], "<script>")
	assert.Contains(t, composite["text"], "<p>ok</p>")
}

func TestTextareaPrepareSaveBareString(t *testing.T) {
	t.Parallel()

	data := &field.Data{RecordID: 5, Value: "old", ValueFormat: int(field.FormatMarkdown)}
	ctrl := fieldtype.NewTextarea(textareaEntry(t, data), 5, 100)

	require.NoError(t, ctrl.PrepareSave("plain string"))
	assert.Equal(t, "plain string", ctrl.Data().Value)
	assert.Equal(t, int(field.FormatMarkdown), ctrl.Data().ValueFormat, "bare strings keep the existing format")
}

func TestTextareaDisplayRendersByFormat(t *testing.T) {
	t.Parallel()

	data := &field.Data{RecordID: 5, Value: "**bold**", ValueFormat: int(field.FormatMarkdown)}
	ctrl := fieldtype.NewTextarea(textareaEntry(t, data), 5, 100)

	out := ctrl.Display()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestTextareaFillWithoutData(t *testing.T) {
	t.Parallel()

	ctrl := fieldtype.NewTextarea(textareaEntry(t, nil), 5, 100)
	assert.False(t, ctrl.HasData())

	frm := form.New()
	require.NoError(t, ctrl.AddToForm(frm))
	require.NoError(t, ctrl.Fill(frm))

	el, _ := frm.Element("customfield_summary")
	assert.Nil(t, el.Default)
}
