package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/store"
)

func testScope(t *testing.T) field.Scope {
	t.Helper()
	s, err := field.NewScope("core_course", "course", 0)
	require.NoError(t, err)
	return s
}

func seedCategory(t *testing.T, s *store.Memory, scope field.Scope, name string) *field.Category {
	t.Helper()
	cat := field.NewCategory(scope, 1, name)
	require.NoError(t, s.SaveCategory(context.Background(), cat))
	return cat
}

func seedField(t *testing.T, s *store.Memory, cat *field.Category, typeName, shortName string) *field.Field {
	t.Helper()
	f := field.New(cat, typeName)
	f.ShortName = shortName
	f.Name = shortName
	require.NoError(t, s.SaveField(context.Background(), f))
	return f
}

func TestMemoryDefinitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)

	cats, err := s.Definitions(ctx, scope)
	require.NoError(t, err)
	assert.Empty(t, cats)

	catB := field.NewCategory(scope, 1, "Details")
	catB.SortOrder = 1
	require.NoError(t, s.SaveCategory(ctx, catB))
	catA := seedCategory(t, s, scope, "General")

	seedField(t, s, catA, "text", "title")
	f2 := field.New(catA, "textarea")
	f2.ShortName = "summary"
	f2.Name = "Summary"
	f2.SortOrder = -1
	require.NoError(t, s.SaveField(ctx, f2))

	cats, err = s.Definitions(ctx, scope)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "General", cats[0].Name, "ordered by sort order")
	assert.Equal(t, "Details", cats[1].Name)
	require.Len(t, cats[0].Fields, 2)
	assert.Equal(t, "summary", cats[0].Fields[0].ShortName, "fields ordered by sort order")
	assert.Equal(t, "title", cats[0].Fields[1].ShortName)
}

func TestMemoryDefinitionsScopeIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	other, err := field.NewScope("mod_survey", "entry", 0)
	require.NoError(t, err)

	seedCategory(t, s, scope, "General")
	seedCategory(t, s, other, "General")

	cats, err := s.Definitions(ctx, scope)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, scope, cats[0].Scope)
}

func TestMemorySaveCategoryDuplicateName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)

	first := seedCategory(t, s, scope, "General")

	dup := field.NewCategory(scope, 1, "General")
	err := s.SaveCategory(ctx, dup)
	require.ErrorIs(t, err, store.ErrDuplicateName)
	assert.ErrorIs(t, err, field.ErrValidation)

	// Re-saving the same category under its own name is not a conflict.
	first.Description = "updated"
	require.NoError(t, s.SaveCategory(ctx, first))

	exists, err := s.CategoryNameExists(ctx, scope, "General")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.CategoryNameExists(ctx, scope, "Other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemorySaveFieldDuplicateShortName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")

	seedField(t, s, cat, "text", "title")

	dup := field.New(cat, "textarea")
	dup.ShortName = "title"
	dup.Name = "Title again"
	err := s.SaveField(ctx, dup)
	require.ErrorIs(t, err, store.ErrDuplicateName)
	assert.ErrorIs(t, err, field.ErrValidation)
}

func TestMemorySaveFieldUnknownCategory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)

	cat := field.NewCategory(scope, 1, "never saved")
	f := field.New(cat, "text")
	f.ShortName = "title"
	f.Name = "Title"
	require.ErrorIs(t, s.SaveField(ctx, f), store.ErrNotFound)
}

func TestMemoryFieldByShortName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")
	seeded := seedField(t, s, cat, "text", "title")

	got, err := s.FieldByShortName(ctx, scope, "title")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)

	_, err = s.FieldByShortName(ctx, scope, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryDataRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")
	f := seedField(t, s, cat, "text", "title")

	_, err := s.Data(ctx, f.ID, 5)
	require.ErrorIs(t, err, store.ErrNotFound)

	d := field.NewData(f, 5, 100)
	d.Value = "hello"
	require.NoError(t, s.SaveData(ctx, d))

	got, err := s.Data(ctx, f.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Value)
	assert.Equal(t, int64(100), got.ContextID)

	// Update through the same row.
	d.Value = "changed"
	require.NoError(t, s.SaveData(ctx, d))
	got, err = s.Data(ctx, f.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Value)
}

func TestMemoryFieldsWithData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")
	f1 := seedField(t, s, cat, "text", "title")
	seedField(t, s, cat, "textarea", "summary")

	d := field.NewData(f1, 5, 100)
	d.Value = "hello"
	require.NoError(t, s.SaveData(ctx, d))

	entries, err := s.FieldsWithData(ctx, scope, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Data)
	assert.Equal(t, "hello", entries[0].Data.Value)
	assert.Nil(t, entries[1].Data, "record has no value for the second field")
}

func TestMemoryDeleteCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")
	f := seedField(t, s, cat, "text", "title")

	d := field.NewData(f, 5, 100)
	require.NoError(t, s.SaveData(ctx, d))

	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	_, err := s.FieldByShortName(ctx, scope, "title")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Data(ctx, f.ID, 5)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), store.ErrNotFound)
}

func TestMemoryDeleteOrphanData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")
	f := seedField(t, s, cat, "text", "title")

	orphan := field.NewData(f, 5, 100)
	orphan.FieldID = "no-such-field"
	require.NoError(t, s.SaveData(ctx, orphan))

	kept := field.NewData(f, 6, 100)
	require.NoError(t, s.SaveData(ctx, kept))

	removed, err := s.DeleteOrphanData(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = s.Data(ctx, f.ID, 6)
	assert.NoError(t, err)
}

func TestMemoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	scope := testScope(t)
	cat := seedCategory(t, s, scope, "General")
	seedField(t, s, cat, "text", "title")

	cats, err := s.Definitions(ctx, scope)
	require.NoError(t, err)
	cats[0].Name = "mutated"
	cats[0].Fields[0].ShortName = "mutated"

	again, err := s.Definitions(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "General", again[0].Name)
	assert.Equal(t, "title", again[0].Fields[0].ShortName)
}
