package models

import "errors"

var (
	// ErrNoTable indicates the file does not contain a pipe table.
	ErrNoTable = errors.New("no story table found")

	// ErrStoryNotFound indicates no catalogued story has the requested number.
	ErrStoryNotFound = errors.New("story not found")

	// ErrDocumentNotFound indicates the table path has not been imported.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrRunNotFound indicates no lint run matches the requested ID.
	ErrRunNotFound = errors.New("lint run not found")

	// ErrAmbiguousRun indicates a run ID prefix matches more than one run.
	ErrAmbiguousRun = errors.New("lint run id prefix is ambiguous")
)
