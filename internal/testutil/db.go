package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/visualeyes/storylint/internal/database"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// TestAppKey carries an *app.App into commands under test.
const TestAppKey ContextKey = "testApp"

// SetupTestDB creates an in-memory catalog with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}

// SampleTable is a well-formed six-story table.
const SampleTable = `# Eye-tracking toolkit requirements

Stories gathered in the 2024 lab survey.

| Story No. | Author | User | Goal | Desired Feature | Skill Level |
|-----------|--------|------|------|-----------------|-------------|
| 1 | MK | Researcher | calibrate the tracker quickly | a guided calibration wizard | novice |
| 2 | JS | Lab technician | check signal quality | a live quality meter | intermediate |
| 3 | MK | Researcher | mark stimulus onsets | event markers in the recording | intermediate |
| 4 | AL | Student | export my sessions | CSV export of raw samples | novice |
| 5 | JS | Researcher | compare participants | a session comparison view | expert |
| 6 | AL | Lab manager | see which devices are booked | a device calendar | novice |
`

// SampleNarrative elaborates story 3 of SampleTable.
const SampleNarrative = `---
story: 3
author: MK
---
# Stimulus onset markers

Each trial starts with a **stimulus onset** that must be visible in the
exported recording.
`

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
