package asserts

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Columns asserts that the result set has exactly the given column names in
// order. The rows are left unread.
func Columns(tb testing.TB, rows *sql.Rows, names ...string) bool {
	tb.Helper()
	got, err := rows.Columns()
	require.NoError(tb, err)
	return assert.Equal(tb, names, got)
}

// RowCount asserts the number of rows in the result set. The rows are fully
// consumed and closed.
func RowCount(tb testing.TB, rows *sql.Rows, want int) bool {
	tb.Helper()
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	require.NoError(tb, rows.Err())
	return assert.Equal(tb, want, n, "row count mismatch")
}

// HasRows asserts that the result set is non-empty (or empty, when want is
// false). The rows are fully consumed and closed.
func HasRows(tb testing.TB, rows *sql.Rows, want bool) bool {
	tb.Helper()
	defer rows.Close()
	found := rows.Next()
	for rows.Next() {
	}
	require.NoError(tb, rows.Err())
	if want {
		return assert.True(tb, found, "expected rows but the result set is empty")
	}
	return assert.False(tb, found, "expected an empty result set")
}
