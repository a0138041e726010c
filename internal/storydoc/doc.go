// Package storydoc reads user-story requirement tables written as GitHub-flavoured
// Markdown pipe tables.
//
// Rows are scanned line by line so that the raw cell count of every row survives;
// a Markdown renderer pads or truncates rows to the header width, which would hide
// exactly the defects the linter reports. The same source is also handed to goldmark
// and any disagreement between the two readings is kept as a parse note.
package storydoc
