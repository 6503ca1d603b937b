package manifest_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/manifest"
	"github.com/contentkit/customfields/pkg/store"
)

const sampleManifest = `
component: core_course
area: course
categories:
  - name: General
    fields:
      - type: text
        shortname: position
        name: Position
        required: true
        visibility: everyone
        config:
          maxlength: "40"
      - type: select
        shortname: level
        name: Level
        visibility: editors
        config:
          options: "Beginner\nAdvanced"
`

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := manifest.Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "core_course", m.Component)
	assert.Equal(t, "course", m.Area)
	require.Len(t, m.Categories, 1)
	require.Len(t, m.Categories[0].Fields, 2)
	assert.Equal(t, "position", m.Categories[0].Fields[0].ShortName)
	assert.True(t, m.Categories[0].Fields[0].Required)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := manifest.Parse(strings.NewReader("component: a\nbogus: true\n"))
	assert.ErrorIs(t, err, manifest.ErrParse)
}

func TestApplyCreatesDefinitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()

	m, err := manifest.Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	require.NoError(t, manifest.Apply(ctx, s, m, 1))

	scope, err := field.NewScope("core_course", "course", 0)
	require.NoError(t, err)

	defs, err := s.Definitions(ctx, scope)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "General", defs[0].Name)
	require.Len(t, defs[0].Fields, 2)
	assert.Equal(t, field.VisibilityEveryone, defs[0].Fields[0].Visibility)
	assert.Equal(t, "40", defs[0].Fields[0].ConfigString("maxlength", ""))
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()

	m, err := manifest.Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	require.NoError(t, manifest.Apply(ctx, s, m, 1))

	// Second apply updates in place instead of duplicating.
	m.Categories[0].Fields[0].Name = "Job title"
	require.NoError(t, manifest.Apply(ctx, s, m, 1))

	scope, err := field.NewScope("core_course", "course", 0)
	require.NoError(t, err)
	defs, err := s.Definitions(ctx, scope)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Len(t, defs[0].Fields, 2)
	assert.Equal(t, "Job title", defs[0].Fields[0].Name)
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()

	m, err := manifest.Parse(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	require.NoError(t, manifest.Apply(ctx, s, m, 1))

	scope, err := field.NewScope("core_course", "course", 0)
	require.NoError(t, err)

	exported, err := manifest.Export(ctx, s, scope)
	require.NoError(t, err)
	require.Len(t, exported.Categories, 1)
	assert.Equal(t, "everyone", exported.Categories[0].Fields[0].Visibility)

	var buf bytes.Buffer
	require.NoError(t, exported.Write(&buf))

	parsed, err := manifest.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, exported.Component, parsed.Component)
	require.Len(t, parsed.Categories, 1)
	assert.Len(t, parsed.Categories[0].Fields, 2)
}
