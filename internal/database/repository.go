package database

import (
	"context"
	"database/sql"
)

// Repository provides all catalog operations over one connection or transaction.
type Repository struct {
	db *sql.DB
	q  querier
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, q: db}
}

// WithTx returns a new repository instance that uses the given transaction
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: r.db, q: tx}
}

// InTx runs fn against a transactional repository, committing when fn
// returns nil.
func (r *Repository) InTx(ctx context.Context, fn func(tx DataStore) error) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(r.WithTx(tx))
	})
}
