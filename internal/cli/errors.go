package cli

import (
	"errors"
	"io/fs"

	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/narrative"
	"github.com/visualeyes/storylint/internal/services/catalog"
	"github.com/visualeyes/storylint/internal/services/runs"
	"github.com/visualeyes/storylint/internal/storydoc"
)

// ErrorClass is how an error is reported: a stable code, an exit status and
// an optional hint.
type ErrorClass struct {
	Code       string
	Exit       int
	Suggestion string
}

// Classify maps domain errors onto codes and exit statuses.
func Classify(err error) ErrorClass {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrorClass{"FILE_NOT_FOUND", ExitNotFound, "Check the path and try again"}
	case errors.Is(err, models.ErrDocumentNotFound):
		return ErrorClass{"DOCUMENT_NOT_FOUND", ExitNotFound, "Import the table first with: storylint import <table.md>"}
	case errors.Is(err, models.ErrStoryNotFound):
		return ErrorClass{"STORY_NOT_FOUND", ExitNotFound, "List stories with: storylint story list"}
	case errors.Is(err, models.ErrRunNotFound):
		return ErrorClass{"RUN_NOT_FOUND", ExitNotFound, "List runs with: storylint runs list"}
	case errors.Is(err, models.ErrAmbiguousRun):
		return ErrorClass{"AMBIGUOUS_RUN_ID", ExitUsage, "Use more characters of the run ID"}
	case errors.Is(err, models.ErrNoTable):
		return ErrorClass{"NO_TABLE", ExitDataErr, "The file must contain a pipe table with a header and delimiter row"}
	case errors.Is(err, narrative.ErrMalformedFrontMatter):
		return ErrorClass{"MALFORMED_NARRATIVE", ExitDataErr, "Close the front matter block with a line containing only ---"}
	case errors.Is(err, storydoc.ErrInvalidStoryNumber),
		errors.Is(err, catalog.ErrInvalidStoryNumber):
		return ErrorClass{"INVALID_STORY_NUMBER", ExitValidation, "Story numbers are positive integers"}
	case errors.Is(err, catalog.ErrEmptyPath):
		return ErrorClass{"DOCUMENT_REQUIRED", ExitUsage, "Pass --document to choose a table"}
	case errors.Is(err, catalog.ErrNoStories):
		return ErrorClass{"NO_STORIES", ExitValidation, ""}
	case errors.Is(err, runs.ErrInvalidRunID):
		return ErrorClass{"INVALID_RUN_ID", ExitUsage, ""}
	case errors.Is(err, lint.ErrUnknownRule), errors.Is(err, lint.ErrNoColumns):
		return ErrorClass{"INVALID_CONFIG", ExitValidation, "Check the rules and table sections of your config"}
	default:
		return ErrorClass{"ERROR", ExitGeneral, ""}
	}
}
