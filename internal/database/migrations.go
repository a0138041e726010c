package database

import (
	"context"
	"database/sql"
)

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		checksum TEXT NOT NULL,
		story_count INTEGER NOT NULL DEFAULT 0,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS stories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id INTEGER NOT NULL,
		number INTEGER NOT NULL,
		number_text TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		user_role TEXT NOT NULL DEFAULT '',
		goal TEXT NOT NULL DEFAULT '',
		desired_feature TEXT NOT NULL DEFAULT '',
		skill_level TEXT NOT NULL DEFAULT '',
		line INTEGER NOT NULL DEFAULT 0,
		UNIQUE (document_id, number),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stories_author ON stories(author)`,

	`CREATE TABLE IF NOT EXISTS narratives (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id INTEGER NOT NULL,
		story_number INTEGER NOT NULL DEFAULT 0,
		path TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_narratives_story ON narratives(document_id, story_number)`,

	`CREATE TABLE IF NOT EXISTS lint_runs (
		id TEXT PRIMARY KEY,
		document_path TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		errors INTEGER NOT NULL DEFAULT 0,
		warnings INTEGER NOT NULL DEFAULT 0,
		infos INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_lint_runs_document ON lint_runs(document_path, started_at)`,

	`CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		rule TEXT NOT NULL,
		severity TEXT NOT NULL,
		path TEXT NOT NULL,
		line INTEGER NOT NULL DEFAULT 0,
		story_number INTEGER NOT NULL DEFAULT 0,
		message TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES lint_runs(id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id)`,
}

// runMigrations creates the database schema
func runMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
