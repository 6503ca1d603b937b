package attachments_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/attachments"
	"github.com/contentkit/customfields/pkg/field"
)

func TestKeyShape(t *testing.T) {
	t.Parallel()

	scope, err := field.NewScope("core_course", "course", 3)
	require.NoError(t, err)

	key := attachments.Key(scope, "syllabus", 7, "Course Outline.pdf")

	assert.True(t, strings.HasPrefix(key, "core_course/course/3/syllabus/7/"), key)
	assert.True(t, strings.HasSuffix(key, "_Course_Outline.pdf"), key)
	assert.NotContains(t, key, " ")

	// Two uploads of the same file get distinct keys.
	other := attachments.Key(scope, "syllabus", 7, "Course Outline.pdf")
	assert.NotEqual(t, key, other)

	assert.True(t, strings.HasPrefix(key, attachments.RecordPrefix(scope, "syllabus", 7)))
}

func TestKeySanitizesTraversal(t *testing.T) {
	t.Parallel()

	scope, err := field.NewScope("core_course", "course", 0)
	require.NoError(t, err)

	key := attachments.Key(scope, "syllabus", 7, "../../etc/passwd")
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasPrefix(key, "core_course/course/0/syllabus/7/"), key)
}

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := attachments.NewMemory()

	info, err := m.Put(ctx, "a/b/c.txt", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)
	assert.EqualValues(t, 5, info.Size)

	rc, err := m.Get(ctx, "a/b/c.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))

	url, err := m.URL(ctx, "a/b/c.txt", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "memory://a/b/c.txt", url)

	require.NoError(t, m.Delete(ctx, "a/b/c.txt"))
	_, err = m.Get(ctx, "a/b/c.txt")
	assert.ErrorIs(t, err, attachments.ErrNotFound)

	// Deleting again is fine.
	require.NoError(t, m.Delete(ctx, "a/b/c.txt"))
}

func TestNewS3RequiresConfig(t *testing.T) {
	t.Parallel()

	_, err := attachments.NewS3(attachments.Config{})
	assert.ErrorIs(t, err, attachments.ErrInvalidConfig)
}
