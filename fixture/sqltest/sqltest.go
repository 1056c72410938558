// Package sqltest provides database fixtures for tests: an in-memory SQLite
// engine for self-contained tests, DSN-based Postgres/MySQL engines for
// integration tests against a real server, and a mocked session for tests
// that only assert on the statements issued.
package sqltest

import (
	"database/sql"
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	// Engine drivers, registered for Open by driver name.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// OpenSQLite returns an in-memory SQLite database scoped to the test. The
// pool is pinned to a single connection so the in-memory schema is shared by
// every statement, and the database is closed when the test finishes.
func OpenSQLite(tb testing.TB) *sql.DB {
	tb.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		tb.Fatalf("sqltest: open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		tb.Fatalf("sqltest: ping sqlite: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}

// OpenPostgres opens a Postgres database from a DSN. It fails fast with a
// ping so a missing test server surfaces as an error here, not in the first
// query. Callers own the returned handle.
func OpenPostgres(dsn string) (*sql.DB, error) {
	return openDSN("postgres", dsn)
}

// OpenMySQL opens a MySQL database from a DSN.
func OpenMySQL(dsn string) (*sql.DB, error) {
	return openDSN("mysql", dsn)
}

func openDSN(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqltest: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqltest: ping %s: %w", driver, err)
	}
	return db, nil
}

// NewMock returns a mocked database session and its expectation handle. The
// session is closed when the test finishes and unmet expectations fail the
// test, so every declared statement must actually be issued.
func NewMock(tb testing.TB) (*sql.DB, sqlmock.Sqlmock) {
	tb.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		tb.Fatalf("sqltest: new mock: %v", err)
	}
	tb.Cleanup(func() {
		db.Close()
		if err := mock.ExpectationsWereMet(); err != nil {
			tb.Errorf("sqltest: unmet expectations: %v", err)
		}
	})
	return db, mock
}
