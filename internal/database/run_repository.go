package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// Lint Run Operations
// ============================================================================

// InsertRun stores a run and its findings.
func (r *Repository) InsertRun(ctx context.Context, run *models.LintRun) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO lint_runs (id, document_path, started_at, errors, warnings, infos)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.DocumentPath, run.StartedAt.UTC(),
		run.Counts.Errors, run.Counts.Warnings, run.Counts.Infos,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	for _, f := range run.Findings {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO findings (run_id, rule, severity, path, line, story_number, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, f.Rule, f.Severity.String(), f.Path, f.Line, f.StoryNumber, f.Message,
		)
		if err != nil {
			return fmt.Errorf("failed to insert finding for run %s: %w", run.ID, err)
		}
	}
	return nil
}

const runColumns = `id, document_path, started_at, errors, warnings, infos`

func scanRun(row interface{ Scan(...any) error }) (*models.LintRun, error) {
	run := &models.LintRun{}
	err := row.Scan(&run.ID, &run.DocumentPath, &run.StartedAt,
		&run.Counts.Errors, &run.Counts.Warnings, &run.Counts.Infos)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves the most recent runs, newest first, without findings.
// A non-positive limit returns every run.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]*models.LintRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+runColumns+` FROM lint_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.LintRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a run and its findings by exact ID
func (r *Repository) GetRun(ctx context.Context, id string) (*models.LintRun, error) {
	run, err := scanRun(r.q.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM lint_runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadFindings(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunByPrefix resolves a unique ID prefix to a run.
func (r *Repository) GetRunByPrefix(ctx context.Context, prefix string) (*models.LintRun, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id FROM lint_runs WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`, likePrefix(prefix))
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// release the single connection before the follow-up query
	rows.Close()

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s", models.ErrRunNotFound, prefix)
	case 1:
		return r.GetRun(ctx, ids[0])
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrAmbiguousRun, prefix)
	}
}

// LatestRun retrieves the newest run recorded for a document, with findings.
func (r *Repository) LatestRun(ctx context.Context, documentPath string) (*models.LintRun, error) {
	run, err := scanRun(r.q.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM lint_runs WHERE document_path = ? ORDER BY started_at DESC LIMIT 1`,
		documentPath))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no runs for %s", models.ErrRunNotFound, documentPath)
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadFindings(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *Repository) loadFindings(ctx context.Context, run *models.LintRun) error {
	rows, err := r.q.QueryContext(ctx, `
		SELECT rule, severity, path, line, story_number, message
		FROM findings WHERE run_id = ? ORDER BY id`, run.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		f := &models.Finding{}
		var severity string
		if err := rows.Scan(&f.Rule, &severity, &f.Path, &f.Line, &f.StoryNumber, &f.Message); err != nil {
			return err
		}
		if err := f.Severity.UnmarshalText([]byte(severity)); err != nil {
			return fmt.Errorf("run %s: %w", run.ID, err)
		}
		run.Findings = append(run.Findings, f)
	}
	return rows.Err()
}
