package lint

import "errors"

var (
	// ErrUnknownRule indicates a severity override names a rule that does not exist.
	ErrUnknownRule = errors.New("unknown lint rule")

	// ErrNoColumns indicates a configuration without expected columns.
	ErrNoColumns = errors.New("at least one expected column is required")
)
