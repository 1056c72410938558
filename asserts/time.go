// Package asserts provides small assertion helpers used alongside generated
// fixtures: fuzzy datetime comparison, collection element-type checks,
// instance equality over generatable members and SQL result-set shape
// checks. All helpers report through testify so failures read uniformly.
package asserts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// defaultNowFuzz is how close to the current time Nowish expects a value to
// be when no explicit fuzziness is given.
const defaultNowFuzz = 20 * time.Second

// FuzzyTimeMatch asserts that two times are within fuzz of each other.
func FuzzyTimeMatch(tb testing.TB, expected, actual time.Time, fuzz time.Duration) bool {
	tb.Helper()
	return assert.WithinDuration(tb, expected, actual, fuzz)
}

// Nowish asserts that tm is within the fuzziness of the current time. The
// default fuzziness is 20 seconds, generous enough for slow CI machines.
func Nowish(tb testing.TB, tm time.Time, fuzz ...time.Duration) bool {
	tb.Helper()
	d := defaultNowFuzz
	if len(fuzz) > 0 {
		d = fuzz[0]
	}
	return assert.WithinDuration(tb, time.Now(), tm, d)
}

// TimesEqual asserts that two optional times represent the same instant.
// Two nils are equal; a single nil is a failure. Instants are compared with
// time.Time.Equal, so equal times in different locations match.
func TimesEqual(tb testing.TB, a, b *time.Time) bool {
	tb.Helper()
	if a == nil || b == nil {
		return assert.Equal(tb, a == nil, b == nil,
			"one time is nil: %v vs %v", a, b)
	}
	return assert.True(tb, a.Equal(*b), "times differ: %v vs %v", a, b)
}
