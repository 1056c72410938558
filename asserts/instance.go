package asserts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/fabrica/fake"
)

// InstanceEqual asserts that the generatable scalar members of two instances
// match, using fake.CheckInstanceEquality. Members named in ignore are not
// compared. One failure lists every mismatching member.
func InstanceEqual(tb testing.TB, expected, actual any, ignore ...string) bool {
	tb.Helper()
	messages := fake.CheckInstanceEquality(expected, actual, ignore...)
	if len(messages) == 0 {
		return true
	}
	return assert.Fail(tb, "instances differ", strings.Join(messages, "\n"))
}
