package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/authz"
)

func TestTree(t *testing.T) {
	t.Parallel()

	tree := authz.NewTree()
	system := tree.System()
	require.True(t, system.IsSystem())
	assert.Equal(t, int64(1), system.ID)

	course := tree.Add(nil, authz.LevelRecord, 42)
	assert.Equal(t, system, course.Parent, "nil parent attaches to system")
	assert.Equal(t, int64(42), course.InstanceID)
	assert.False(t, course.IsSystem())

	got, err := tree.ContextByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, course, got)

	_, err = tree.ContextByID(999)
	require.ErrorIs(t, err, authz.ErrUnknownContext)
}

func TestCheckers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tree := authz.NewTree()

	assert.True(t, authz.AllowAll().Can(ctx, "anything", tree.System()))
	assert.False(t, authz.DenyAll().Can(ctx, "anything", tree.System()))

	grants := authz.Grants{"course:editfields": true}
	assert.True(t, grants.Can(ctx, "course:editfields", tree.System()))
	assert.False(t, grants.Can(ctx, "course:configurefields", tree.System()))
}
