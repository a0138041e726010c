package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// Story Operations
// ============================================================================

// ReplaceStories removes the document's stories and inserts the given ones.
// Callers wrap it in a transaction together with UpsertDocument.
func (r *Repository) ReplaceStories(ctx context.Context, documentID int, stories []*models.Story) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM stories WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to clear stories: %w", err)
	}

	for _, s := range stories {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO stories (document_id, number, number_text, author, user_role, goal, desired_feature, skill_level, line)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			documentID, s.Number, s.NumberText, s.Author, s.User, s.Goal, s.DesiredFeature, s.SkillLevel, s.Line,
		)
		if err != nil {
			return fmt.Errorf("failed to insert story %d: %w", s.Number, err)
		}
	}
	return nil
}

// ReplaceNarratives removes the document's narratives and inserts the given ones.
func (r *Repository) ReplaceNarratives(ctx context.Context, documentID int, narratives []*models.Narrative) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM narratives WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to clear narratives: %w", err)
	}

	for _, n := range narratives {
		_, err := r.q.ExecContext(ctx, `
			INSERT INTO narratives (document_id, story_number, path, author, title, body)
			VALUES (?, ?, ?, ?, ?, ?)`,
			documentID, n.StoryNumber, n.Path, n.Author, n.Title, n.Body,
		)
		if err != nil {
			return fmt.Errorf("failed to insert narrative %s: %w", n.Path, err)
		}
	}
	return nil
}

const storySelect = `
	SELECT d.path, s.number, s.number_text, s.author, s.user_role, s.goal,
		s.desired_feature, s.skill_level, s.line
	FROM stories s
	INNER JOIN documents d ON d.id = s.document_id`

func scanStory(row interface{ Scan(...any) error }) (*models.StoryDetail, error) {
	s := &models.Story{}
	detail := &models.StoryDetail{Story: s}
	err := row.Scan(&detail.DocumentPath, &s.Number, &s.NumberText, &s.Author, &s.User,
		&s.Goal, &s.DesiredFeature, &s.SkillLevel, &s.Line)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListStories retrieves catalogued stories ordered by document and number,
// each with the narratives that elaborate it.
func (r *Repository) ListStories(ctx context.Context, query StoryQuery) ([]*models.StoryDetail, error) {
	var (
		where []string
		args  []any
	)
	if query.DocumentPath != "" {
		where = append(where, "d.path = ?")
		args = append(args, query.DocumentPath)
	}
	if query.Author != "" {
		where = append(where, "s.author = ? COLLATE NOCASE")
		args = append(args, query.Author)
	}
	if query.User != "" {
		where = append(where, `s.user_role LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(query.User)+"%")
	}

	stmt := storySelect
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY d.path, s.number"

	stories, err := r.queryStories(ctx, stmt, args...)
	if err != nil || len(stories) == 0 {
		return stories, err
	}
	if err := r.attachNarratives(ctx, query.DocumentPath, stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *Repository) queryStories(ctx context.Context, stmt string, args ...any) ([]*models.StoryDetail, error) {
	rows, err := r.q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*models.StoryDetail
	for rows.Next() {
		detail, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, detail)
	}
	return stories, rows.Err()
}

type storyKey struct {
	path   string
	number int
}

// attachNarratives loads the narratives of the listed stories' documents.
// The catalog runs on one connection, so the story rows must be closed first.
func (r *Repository) attachNarratives(ctx context.Context, documentPath string, stories []*models.StoryDetail) error {
	byKey := make(map[storyKey]*models.StoryDetail, len(stories))
	for _, d := range stories {
		byKey[storyKey{d.DocumentPath, d.Story.Number}] = d
	}

	stmt := `
		SELECT d.path, n.path, n.story_number, n.author, n.title, n.body
		FROM narratives n
		INNER JOIN documents d ON d.id = n.document_id`
	var args []any
	if documentPath != "" {
		stmt += " WHERE d.path = ?"
		args = append(args, documentPath)
	}
	stmt += " ORDER BY d.path, n.path"

	rows, err := r.q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var docPath string
		n := &models.Narrative{}
		if err := rows.Scan(&docPath, &n.Path, &n.StoryNumber, &n.Author, &n.Title, &n.Body); err != nil {
			return err
		}
		if d, ok := byKey[storyKey{docPath, n.StoryNumber}]; ok {
			d.Narratives = append(d.Narratives, n)
		}
	}
	return rows.Err()
}

// GetStory retrieves one story with its narratives
func (r *Repository) GetStory(ctx context.Context, path string, number int) (*models.StoryDetail, error) {
	doc, err := r.GetDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	detail, err := scanStory(r.q.QueryRowContext(ctx,
		storySelect+` WHERE s.document_id = ? AND s.number = ?`, doc.ID, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d in %s", models.ErrStoryNotFound, number, path)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT path, story_number, author, title, body
		FROM narratives
		WHERE document_id = ? AND story_number = ?
		ORDER BY path`, doc.ID, number)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		n := &models.Narrative{}
		if err := rows.Scan(&n.Path, &n.StoryNumber, &n.Author, &n.Title, &n.Body); err != nil {
			return nil, err
		}
		detail.Narratives = append(detail.Narratives, n)
	}

	return detail, rows.Err()
}
