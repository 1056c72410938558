package fake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrica/fake"
)

func TestCheckInstanceEqualityEqual(t *testing.T) {
	t.Parallel()

	a := fake.MustInstance[Site](fake.WithSeed(3))
	b := fake.MustInstance[Site](fake.WithSeed(3))
	assert.Empty(t, fake.CheckInstanceEquality(a, b))
}

func TestCheckInstanceEqualityMismatch(t *testing.T) {
	t.Parallel()

	a := fake.MustInstance[Site](fake.WithSeed(3))
	b := fake.MustInstance[Site](fake.WithSeed(4))

	messages := fake.CheckInstanceEquality(a, b)
	require.Len(t, messages, 3)
	assert.Contains(t, messages[0], "id")
	assert.Contains(t, messages[1], "name")
	assert.Contains(t, messages[2], "nickname")
}

func TestCheckInstanceEqualityIgnored(t *testing.T) {
	t.Parallel()

	a := fake.MustInstance[Site](fake.WithSeed(3))
	b := fake.MustInstance[Site](fake.WithSeed(3), fake.WithOverride("name", "other"))

	assert.NotEmpty(t, fake.CheckInstanceEquality(a, b))
	assert.Empty(t, fake.CheckInstanceEquality(a, b, "name"))
}

func TestCheckInstanceEqualityOptionalMembers(t *testing.T) {
	t.Parallel()

	a := fake.MustInstance[Site](fake.WithSeed(3))
	b := fake.MustInstance[Site](fake.WithSeed(3), fake.WithOptionalNil())

	messages := fake.CheckInstanceEquality(a, b)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "nickname")

	// Two absent optionals compare equal.
	c := fake.MustInstance[Site](fake.WithSeed(3), fake.WithOptionalNil())
	assert.Empty(t, fake.CheckInstanceEquality(b, c))
}

func TestCheckInstanceEqualityNils(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fake.CheckInstanceEquality(nil, nil))
	assert.NotEmpty(t, fake.CheckInstanceEquality(nil, fake.MustInstance[Site]()))
	assert.NotEmpty(t, fake.CheckInstanceEquality(fake.MustInstance[Site](), nil))

	// Pointer instances are dereferenced; two nil pointers compare equal.
	assert.Empty(t, fake.CheckInstanceEquality((*Site)(nil), (*Site)(nil)))
}

func TestCheckInstanceEqualityRelationshipsSkipped(t *testing.T) {
	t.Parallel()

	a := fake.MustInstance[Post](fake.WithSeed(2), fake.WithRelationships())
	b := fake.MustInstance[Post](fake.WithSeed(2))

	// Scalars match; relationship members are not compared.
	assert.Empty(t, fake.CheckInstanceEquality(a, b))
}
