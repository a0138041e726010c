package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// Document Operations
// ============================================================================

const documentColumns = `id, path, checksum, story_count, imported_at`

// UpsertDocument creates the document row for path or refreshes its checksum,
// story count and import time.
func (r *Repository) UpsertDocument(ctx context.Context, path, checksum string, storyCount int, importedAt time.Time) (*models.DocumentRecord, error) {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO documents (path, checksum, story_count, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum = excluded.checksum,
			story_count = excluded.story_count,
			imported_at = excluded.imported_at`,
		path, checksum, storyCount, importedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document %s: %w", path, err)
	}
	return r.GetDocument(ctx, path)
}

// GetDocument retrieves a document by path
func (r *Repository) GetDocument(ctx context.Context, path string) (*models.DocumentRecord, error) {
	doc := &models.DocumentRecord{}
	err := r.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE path = ?`, path,
	).Scan(&doc.ID, &doc.Path, &doc.Checksum, &doc.StoryCount, &doc.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrDocumentNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments retrieves every imported document ordered by path
func (r *Repository) ListDocuments(ctx context.Context) ([]*models.DocumentRecord, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.DocumentRecord
	for rows.Next() {
		doc := &models.DocumentRecord{}
		if err := rows.Scan(&doc.ID, &doc.Path, &doc.Checksum, &doc.StoryCount, &doc.ImportedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}
