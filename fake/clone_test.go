package fake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrica/fake"
)

func TestCloneShallow(t *testing.T) {
	t.Parallel()

	src := fake.MustInstance[Site](fake.WithSeed(5))
	out, err := fake.Clone(src)
	require.NoError(t, err)

	clone, ok := out.(Site)
	require.True(t, ok)
	assert.Equal(t, src, clone)
	// Shallow: the optional member shares the original pointer.
	assert.Same(t, src.Nickname, clone.Nickname)
}

func TestClonePointerSource(t *testing.T) {
	t.Parallel()

	src := fake.MustInstance[*Site](fake.WithSeed(5))
	out, err := fake.Clone(src)
	require.NoError(t, err)

	clone, ok := out.(*Site)
	require.True(t, ok)
	assert.Equal(t, *src, *clone)
	assert.NotSame(t, src, clone)
}

func TestCloneIgnoredMembers(t *testing.T) {
	t.Parallel()

	src := fake.MustInstance[Site](fake.WithSeed(5))
	out, err := fake.Clone(src, "nickname")
	require.NoError(t, err)

	clone := out.(Site)
	assert.Equal(t, src.ID, clone.ID)
	assert.Equal(t, src.Name, clone.Name)
	assert.Nil(t, clone.Nickname)
}

func TestCloneErrors(t *testing.T) {
	t.Parallel()

	_, err := fake.Clone(nil)
	require.Error(t, err)

	_, err = fake.Clone((*Site)(nil))
	require.Error(t, err)

	_, err = fake.Clone(42)
	require.Error(t, err)
	assert.True(t, fake.IsUnsupportedType(err))
}

func TestDeepClone(t *testing.T) {
	t.Parallel()

	src := fake.MustInstance[Post](fake.WithRelationships())
	var dst Post
	require.NoError(t, fake.DeepClone(src, &dst))
	assert.Equal(t, src, dst)

	// Deep: mutating the copy's slice leaves the source untouched.
	require.NotEmpty(t, dst.Tags)
	dst.Tags[0] = "mutated"
	assert.NotEqual(t, src.Tags[0], dst.Tags[0])
}
