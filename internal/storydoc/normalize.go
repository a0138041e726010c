package storydoc

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalizeCell trims a cell and puts it in Unicode NFC so that visually identical
// initials typed on different keyboards compare equal.
func normalizeCell(cell string) string {
	return norm.NFC.String(strings.TrimSpace(cell))
}

// headerKey folds a header cell for name matching: case, surrounding whitespace,
// trailing punctuation and inner whitespace runs are ignored.
func headerKey(header string) string {
	h := strings.TrimSpace(header)
	h = strings.TrimRight(h, ".: ")
	h = strings.Join(strings.Fields(h), " ")
	// Casers carry state, so each call gets its own.
	return cases.Fold().String(norm.NFC.String(h))
}

// HeaderMatches reports whether a header cell names the given column.
func HeaderMatches(header, column string) bool {
	return headerKey(header) == headerKey(column)
}
