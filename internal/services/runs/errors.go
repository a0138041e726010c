package runs

import "errors"

// Run-related errors
var (
	// ErrInvalidRunID is returned for IDs shorter than MinPrefixLength.
	ErrInvalidRunID = errors.New("run ID must be a full ID or a prefix of at least 8 characters")
	ErrNilReport    = errors.New("report cannot be nil")
)
