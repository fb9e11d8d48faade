// Package testutil provides test utilities for database and dataset setup.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema is the users table shared by source and app tests.
const Schema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	age INTEGER,
	email TEXT NOT NULL DEFAULT '',
	department TEXT NOT NULL DEFAULT 'Sales'
);
`

// NewTestDB creates an in-memory SQLite database with the test schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}

// NewTestDBFile creates a SQLite database file with the test schema in a
// temporary directory and returns its path with an open handle. The
// handle is closed when the test ends.
func NewTestDBFile(t *testing.T) (string, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.db")
	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return path, db
}
