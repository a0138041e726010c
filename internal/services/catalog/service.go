// Package catalog stores imported story tables and answers queries over them.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/visualeyes/storylint/internal/database"
	"github.com/visualeyes/storylint/internal/models"
)

// Service defines all catalog operations
type Service interface {
	// Write operations
	Import(ctx context.Context, req ImportRequest) (*models.DocumentRecord, error)

	// Read operations
	ListDocuments(ctx context.Context) ([]*models.DocumentRecord, error)
	ListStories(ctx context.Context, filter StoryFilter) ([]*models.StoryDetail, error)
	GetStory(ctx context.Context, path string, number int) (*models.StoryDetail, error)
}

// ImportRequest encapsulates a parsed document to store
type ImportRequest struct {
	Document *models.Document
	// Checksum identifies the imported table content; see Checksum.
	Checksum string
}

// StoryFilter narrows ListStories. Empty fields match everything.
type StoryFilter struct {
	DocumentPath string
	Author       string
	User         string
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new catalog service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo, now: time.Now}
}

// Checksum returns the hex SHA-256 of a table's raw content.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Import replaces the stored stories and narratives of the document's table in
// one transaction. Stories without a usable number and repeated numbers are
// skipped; the first occurrence wins.
func (s *service) Import(ctx context.Context, req ImportRequest) (*models.DocumentRecord, error) {
	if req.Document == nil || req.Document.Table == nil || strings.TrimSpace(req.Document.Table.Path) == "" {
		return nil, ErrEmptyPath
	}
	table := req.Document.Table

	stories := importable(table)
	if len(stories) == 0 {
		return nil, ErrNoStories
	}

	var record *models.DocumentRecord
	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		doc, err := tx.UpsertDocument(ctx, table.Path, req.Checksum, len(stories), s.now())
		if err != nil {
			return err
		}
		if err := tx.ReplaceStories(ctx, doc.ID, stories); err != nil {
			return err
		}
		if err := tx.ReplaceNarratives(ctx, doc.ID, req.Document.Narratives); err != nil {
			return err
		}
		record = doc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", table.Path, err)
	}

	slog.Info("imported document",
		"path", record.Path,
		"stories", record.StoryCount,
		"narratives", len(req.Document.Narratives))
	return record, nil
}

func importable(table *models.Table) []*models.Story {
	seen := make(map[int]bool, len(table.Stories))
	out := make([]*models.Story, 0, len(table.Stories))
	for _, story := range table.Stories {
		if story.Number <= 0 {
			slog.Warn("skipping story without number", "path", table.Path, "line", story.Line)
			continue
		}
		if seen[story.Number] {
			slog.Warn("skipping duplicate story", "path", table.Path, "number", story.Number, "line", story.Line)
			continue
		}
		seen[story.Number] = true
		out = append(out, story)
	}
	return out
}

// ListDocuments retrieves every imported document
func (s *service) ListDocuments(ctx context.Context) ([]*models.DocumentRecord, error) {
	return s.repo.ListDocuments(ctx)
}

// ListStories retrieves catalogued stories matching filter
func (s *service) ListStories(ctx context.Context, filter StoryFilter) ([]*models.StoryDetail, error) {
	return s.repo.ListStories(ctx, database.StoryQuery{
		DocumentPath: filter.DocumentPath,
		Author:       strings.TrimSpace(filter.Author),
		User:         strings.TrimSpace(filter.User),
	})
}

// GetStory retrieves a story and its narratives. An empty path resolves to the
// only imported document.
func (s *service) GetStory(ctx context.Context, path string, number int) (*models.StoryDetail, error) {
	if number <= 0 {
		return nil, ErrInvalidStoryNumber
	}

	if path == "" {
		docs, err := s.repo.ListDocuments(ctx)
		if err != nil {
			return nil, err
		}
		switch len(docs) {
		case 0:
			return nil, models.ErrDocumentNotFound
		case 1:
			path = docs[0].Path
		default:
			return nil, fmt.Errorf("%w: %d documents imported", ErrEmptyPath, len(docs))
		}
	}

	return s.repo.GetStory(ctx, path, number)
}
