package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builder accumulates user rows and inserts them in order.
type Builder struct {
	t     *testing.T
	db    *sql.DB
	users []userData
}

// NewBuilder creates a builder for the given test database.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db}
}

// WithUser adds a user with optional configuration.
func (b *Builder) WithUser(id int, name string, opts ...UserOption) *Builder {
	u := defaultUser(id, name)
	for _, opt := range opts {
		opt(&u)
	}
	b.users = append(b.users, u)
	return b
}

// Build inserts all accumulated rows into the database.
func (b *Builder) Build() {
	b.t.Helper()
	for _, u := range b.users {
		b.insertUser(u)
	}
}

func (b *Builder) insertUser(u userData) {
	b.t.Helper()
	_, err := b.db.Exec(
		`INSERT INTO users (id, name, age, email, department) VALUES (?, ?, ?, ?, ?)`,
		u.id, u.name, u.age, u.email, u.department,
	)
	require.NoError(b.t, err)
}
