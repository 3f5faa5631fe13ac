// Package store is the data access layer. It issues parameterized queries
// against the relational store and owns no state of its own; every method is
// safe for concurrent use because the *sqlx.DB pool is the only shared
// resource.
package store

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound signals a missing row where the caller requires one.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate signals a unique-constraint violation. Uniqueness lives
	// in the schema, so a concurrent duplicate insert surfaces here instead
	// of racing a prior existence check.
	ErrDuplicate = errors.New("already exists")
)

// Store wraps the shared connection pool.
type Store struct {
	db *sqlx.DB
}

// New returns a Store over the given pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation recognizes unique-constraint errors from both supported
// drivers (Postgres in production, SQLite in tests and local dev).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
