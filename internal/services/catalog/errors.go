package catalog

import "errors"

// Catalog-related errors
var (
	// Validation errors
	ErrEmptyPath          = errors.New("document path cannot be empty")
	ErrNoStories          = errors.New("document has no stories to import")
	ErrInvalidStoryNumber = errors.New("story number must be positive")
)
