package database

import "context"

// DataStore is the storage the catalog and run services depend on.
type DataStore interface {
	DocumentRepository
	StoryRepository
	RunRepository

	// InTx runs fn against a transactional store, committing when fn returns nil.
	InTx(ctx context.Context, fn func(tx DataStore) error) error
}

var _ DataStore = (*Repository)(nil)
