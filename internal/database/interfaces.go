package database

import (
	"context"
	"time"

	"github.com/visualeyes/storylint/internal/models"
)

// DocumentRepository defines operations on imported story tables
type DocumentRepository interface {
	UpsertDocument(ctx context.Context, path, checksum string, storyCount int, importedAt time.Time) (*models.DocumentRecord, error)
	GetDocument(ctx context.Context, path string) (*models.DocumentRecord, error)
	ListDocuments(ctx context.Context) ([]*models.DocumentRecord, error)
}

// StoryRepository defines operations on catalogued stories and narratives
type StoryRepository interface {
	ReplaceStories(ctx context.Context, documentID int, stories []*models.Story) error
	ReplaceNarratives(ctx context.Context, documentID int, narratives []*models.Narrative) error
	ListStories(ctx context.Context, query StoryQuery) ([]*models.StoryDetail, error)
	GetStory(ctx context.Context, path string, number int) (*models.StoryDetail, error)
}

// RunRepository defines operations on recorded lint runs
type RunRepository interface {
	InsertRun(ctx context.Context, run *models.LintRun) error
	ListRuns(ctx context.Context, limit int) ([]*models.LintRun, error)
	GetRun(ctx context.Context, id string) (*models.LintRun, error)
	GetRunByPrefix(ctx context.Context, prefix string) (*models.LintRun, error)
	LatestRun(ctx context.Context, documentPath string) (*models.LintRun, error)
}

// StoryQuery narrows ListStories. Empty fields match everything.
type StoryQuery struct {
	DocumentPath string
	Author       string // exact, case-insensitive
	User         string // substring, case-insensitive
}
