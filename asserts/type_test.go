package asserts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/fabrica/asserts"
)

func TestSliceOf(t *testing.T) {
	t.Parallel()

	assert.True(t, asserts.SliceOf(t, "", []string{"a", "b"}))
	assert.True(t, asserts.SliceOf(t, 0, []int{1, 2, 3}, 3))
	assert.True(t, asserts.SliceOf(t, "", []any{"a", "b"}), "interface elements unwrapped")

	c := capture(t)
	assert.False(t, asserts.SliceOf(c, 0, []string{"a"}))
	assert.True(t, c.failed())

	c = capture(t)
	assert.False(t, asserts.SliceOf(c, "", []string{"a"}, 2), "wrong length")
	assert.True(t, c.failed())

	c = capture(t)
	assert.False(t, asserts.SliceOf(c, "", "not a slice"))
	assert.True(t, c.failed())

	c = capture(t)
	assert.False(t, asserts.SliceOf(c, "", nil))
	assert.True(t, c.failed())
}

func TestMapOf(t *testing.T) {
	t.Parallel()

	assert.True(t, asserts.MapOf(t, "", 0, map[string]int{"a": 1}))
	assert.True(t, asserts.MapOf(t, "", 0, map[string]int{"a": 1, "b": 2}, 2))

	c := capture(t)
	assert.False(t, asserts.MapOf(c, "", "", map[string]int{"a": 1}), "wrong value type")
	assert.True(t, c.failed())

	c = capture(t)
	assert.False(t, asserts.MapOf(c, 0, 0, map[string]int{"a": 1}), "wrong key type")
	assert.True(t, c.failed())

	c = capture(t)
	assert.False(t, asserts.MapOf(c, "", 0, []string{"a"}), "not a map")
	assert.True(t, c.failed())
}
