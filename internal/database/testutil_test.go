package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ============================================================================
// FIXTURES
// ============================================================================

var fixedTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleStories() []*models.Story {
	return []*models.Story{
		{Number: 1, NumberText: "1", Author: "MK", User: "Researcher", Goal: "calibrate the tracker", DesiredFeature: "a calibration wizard", SkillLevel: "novice", Line: 7},
		{Number: 2, NumberText: "2", Author: "JS", User: "Lab technician", Goal: "export raw gaze samples", DesiredFeature: "CSV export", SkillLevel: "expert", Line: 8},
		{Number: 3, NumberText: "3", Author: "MK", User: "Researcher", Goal: "annotate stimuli", DesiredFeature: "a stimulus browser", SkillLevel: "intermediate", Line: 9},
	}
}

// importDocument stores path with the sample stories and returns its record.
func importDocument(t *testing.T, repo *Repository, path string, narratives []*models.Narrative) *models.DocumentRecord {
	t.Helper()
	ctx := context.Background()

	var doc *models.DocumentRecord
	err := repo.InTx(ctx, func(tx DataStore) error {
		var err error
		doc, err = tx.UpsertDocument(ctx, path, "abc123", 3, fixedTime)
		if err != nil {
			return err
		}
		if err := tx.ReplaceStories(ctx, doc.ID, sampleStories()); err != nil {
			return err
		}
		return tx.ReplaceNarratives(ctx, doc.ID, narratives)
	})
	if err != nil {
		t.Fatalf("Failed to import %s: %v", path, err)
	}
	return doc
}
