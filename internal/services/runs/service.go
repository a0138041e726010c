// Package runs records lint runs and looks them up again.
package runs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/visualeyes/storylint/internal/database"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
)

// MinPrefixLength is the shortest run ID prefix Get accepts.
const MinPrefixLength = 8

// Service defines all lint run operations
type Service interface {
	Record(ctx context.Context, path string, report *lint.Report) (*models.LintRun, error)
	List(ctx context.Context, limit int) ([]*models.LintRun, error)
	Get(ctx context.Context, id string) (*models.LintRun, error)
	Latest(ctx context.Context, path string) (*models.LintRun, error)
}

// service implements Service interface
type service struct {
	repo  database.DataStore
	newID func() string
}

// NewService creates a new run service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo, newID: uuid.NewString}
}

// Record stores report under a fresh run ID.
func (s *service) Record(ctx context.Context, path string, report *lint.Report) (*models.LintRun, error) {
	if report == nil {
		return nil, ErrNilReport
	}
	if path == "" {
		path = report.Path
	}

	run := &models.LintRun{
		ID:           s.newID(),
		DocumentPath: path,
		StartedAt:    report.StartedAt,
		Counts:       report.Counts(),
		Findings:     report.Findings,
	}

	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		return tx.InsertRun(ctx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	slog.Info("recorded lint run", "id", run.ID, "path", path, "findings", len(run.Findings))
	return run, nil
}

// List retrieves the most recent runs, newest first
func (s *service) List(ctx context.Context, limit int) ([]*models.LintRun, error) {
	return s.repo.ListRuns(ctx, limit)
}

// Get retrieves a run by full ID or unique prefix
func (s *service) Get(ctx context.Context, id string) (*models.LintRun, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if len(id) < MinPrefixLength {
		return nil, ErrInvalidRunID
	}
	if _, err := uuid.Parse(id); err == nil {
		return s.repo.GetRun(ctx, id)
	}
	return s.repo.GetRunByPrefix(ctx, id)
}

// Latest retrieves the newest run of a document
func (s *service) Latest(ctx context.Context, path string) (*models.LintRun, error) {
	return s.repo.LatestRun(ctx, path)
}
