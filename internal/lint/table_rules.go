package lint

import (
	"fmt"
	"strings"

	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/storydoc"
)

// placeholders are cell values that do not count as populated.
var placeholders = map[string]bool{
	"-": true, "--": true, "—": true, "?": true,
	"tbd": true, "todo": true, "n/a": true, "na": true, "tba": true,
}

// ============================================================================
// table-header
// ============================================================================

type tableHeaderRule struct{}

func (tableHeaderRule) ID() string                       { return "table-header" }
func (tableHeaderRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (tableHeaderRule) Description() string {
	return "header names the expected columns in the expected order"
}

func (r tableHeaderRule) Check(doc *models.Document, cfg *RuleConfig) []*models.Finding {
	table := doc.Table
	var findings []*models.Finding
	report := func(msg string) {
		findings = append(findings, finding(r, table.Path, table.HeaderLine, 0, msg))
	}

	matches := func(header string, field int) bool {
		if storydoc.HeaderMatches(header, cfg.Columns[field]) {
			return true
		}
		if field == 0 {
			for _, alias := range cfg.StoryNoAliases {
				if storydoc.HeaderMatches(header, alias) {
					return true
				}
			}
		}
		return false
	}

	if len(table.Header) != len(cfg.Columns) {
		report(fmt.Sprintf("header has %d columns, expected %d", len(table.Header), len(cfg.Columns)))
	}

	position := make(map[int]int) // field -> header index
	for field := range cfg.Columns {
		for col, h := range table.Header {
			if matches(h, field) {
				if _, seen := position[field]; seen {
					report(fmt.Sprintf("column %q appears more than once", cfg.Columns[field]))
					continue
				}
				position[field] = col
			}
		}
		if _, ok := position[field]; !ok {
			report(fmt.Sprintf("missing column %q", cfg.Columns[field]))
		}
	}

	for col, h := range table.Header {
		known := false
		for field := range cfg.Columns {
			if matches(h, field) {
				known = true
				break
			}
		}
		if !known {
			if strings.TrimSpace(h) == "" {
				report(fmt.Sprintf("column %d has an empty header", col+1))
			} else {
				report(fmt.Sprintf("unexpected column %q", h))
			}
		}
	}

	// order only means something once every column is present
	if len(position) != len(cfg.Columns) {
		return findings
	}
	for field := range cfg.Columns {
		if col := position[field]; col != field {
			report(fmt.Sprintf("column %q is in position %d, expected %d", cfg.Columns[field], col+1, field+1))
		}
	}

	return findings
}

// ============================================================================
// table-parse
// ============================================================================

type tableParseRule struct{}

func (tableParseRule) ID() string                       { return "table-parse" }
func (tableParseRule) DefaultSeverity() models.Severity { return models.SeverityWarning }
func (tableParseRule) Description() string {
	return "table renders the same way it reads (delimiter row, header width, row breaks)"
}

func (r tableParseRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	for _, note := range doc.Table.Notes {
		findings = append(findings, finding(r, doc.Table.Path, note.Line, 0, note.Message))
	}
	return findings
}

// ============================================================================
// column-count
// ============================================================================

type columnCountRule struct{}

func (columnCountRule) ID() string                       { return "column-count" }
func (columnCountRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (columnCountRule) Description() string {
	return "every row has exactly one cell per expected column"
}

func (r columnCountRule) Check(doc *models.Document, cfg *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	want := len(cfg.Columns)
	for i, row := range doc.Table.Rows {
		if got := len(row.Cells); got != want {
			findings = append(findings, finding(r, doc.Table.Path, row.Line, storyNumberAt(doc.Table, i),
				fmt.Sprintf("row has %d cells, expected %d", got, want)))
		}
	}
	return findings
}

// ============================================================================
// empty-cell
// ============================================================================

type emptyCellRule struct{}

func (emptyCellRule) ID() string                       { return "empty-cell" }
func (emptyCellRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (emptyCellRule) Description() string {
	return "every cell is populated (placeholders such as TBD or - do not count)"
}

func (r emptyCellRule) Check(doc *models.Document, cfg *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	for i, row := range doc.Table.Rows {
		for col, cell := range row.Cells {
			if col >= len(cfg.Columns) {
				break
			}
			name := columnName(doc.Table, cfg, col)
			switch {
			case cell == "":
				findings = append(findings, finding(r, doc.Table.Path, row.Line, storyNumberAt(doc.Table, i),
					fmt.Sprintf("%q cell is empty", name)))
			case placeholders[strings.ToLower(cell)]:
				findings = append(findings, finding(r, doc.Table.Path, row.Line, storyNumberAt(doc.Table, i),
					fmt.Sprintf("%q cell holds placeholder %q", name, cell)))
			}
		}
	}
	return findings
}

// columnName prefers the header as written and falls back to the canonical name.
func columnName(table *models.Table, cfg *RuleConfig, col int) string {
	if col < len(table.Header) && table.Header[col] != "" {
		return table.Header[col]
	}
	return cfg.Columns[col]
}

// storyNumberAt returns the parsed number of the i-th row, or 0.
func storyNumberAt(table *models.Table, i int) int {
	if i < 0 || i >= len(table.Stories) {
		return 0
	}
	return table.Stories[i].Number
}
