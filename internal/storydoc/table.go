package storydoc

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/visualeyes/storylint/internal/models"
)

// Options controls how header cells are mapped onto story fields.
type Options struct {
	// Columns is the expected header in canonical order.
	Columns []string
	// StoryNoAliases are extra spellings accepted for the Story No. column.
	StoryNoAliases []string
}

// DefaultOptions returns the canonical six-column layout.
func DefaultOptions() Options {
	return Options{
		Columns:        models.DefaultColumns(),
		StoryNoAliases: models.DefaultStoryNoAliases(),
	}
}

// ReadTable reads and parses the story table in path.
func ReadTable(path string, opts Options) (*models.Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	table, err := ParseTable(path, src, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseTable parses the first pipe table in src. It returns models.ErrNoTable when the
// source contains none.
func ParseTable(path string, src []byte, opts Options) (*models.Table, error) {
	if len(opts.Columns) == 0 {
		opts = DefaultOptions()
	}

	st, ok := scan(splitLines(src))
	if !ok {
		return nil, models.ErrNoTable
	}

	table := &models.Table{
		Path:       path,
		Header:     st.header,
		HeaderLine: st.headerLine,
	}
	for i, cells := range st.rows {
		table.Rows = append(table.Rows, models.Row{Line: st.rowLines[i], Cells: cells})
	}

	if st.delimiterCells != len(st.header) {
		table.Notes = append(table.Notes, models.ParseNote{
			Line:    st.headerLine + 1,
			Message: fmt.Sprintf("delimiter row has %d cells but the header has %d", st.delimiterCells, len(st.header)),
		})
	}
	table.Notes = append(table.Notes, crossCheck(src, st)...)

	index := mapColumns(st.header, opts)
	for _, row := range table.Rows {
		table.Stories = append(table.Stories, buildStory(row, index))
	}

	return table, nil
}

// columnIndex maps a canonical field position (0..5) to a header cell index, or -1.
type columnIndex [6]int

// mapColumns resolves each canonical column by name first, then by position for
// columns whose header cell is unrecognised.
func mapColumns(header []string, opts Options) columnIndex {
	var idx columnIndex
	claimed := make(map[int]bool)
	for field := range idx {
		idx[field] = -1
		if field >= len(opts.Columns) {
			continue
		}
		names := []string{opts.Columns[field]}
		if field == 0 {
			names = append(names, opts.StoryNoAliases...)
		}
		for col, h := range header {
			if claimed[col] {
				continue
			}
			if matchesAny(h, names) {
				idx[field] = col
				claimed[col] = true
				break
			}
		}
	}

	for field := range idx {
		if idx[field] == -1 && field < len(header) && !claimed[field] {
			idx[field] = field
			claimed[field] = true
		}
	}
	return idx
}

func matchesAny(header string, names []string) bool {
	for _, n := range names {
		if HeaderMatches(header, n) {
			return true
		}
	}
	return false
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func buildStory(row models.Row, idx columnIndex) *models.Story {
	numberText := cellAt(row.Cells, idx[0])
	number, _ := ParseStoryNumber(numberText)
	return &models.Story{
		Number:         number,
		NumberText:     numberText,
		Author:         cellAt(row.Cells, idx[1]),
		User:           cellAt(row.Cells, idx[2]),
		Goal:           cellAt(row.Cells, idx[3]),
		DesiredFeature: cellAt(row.Cells, idx[4]),
		SkillLevel:     cellAt(row.Cells, idx[5]),
		Line:           row.Line,
	}
}

var storyNumberPattern = regexp.MustCompile(`(?i)^(?:story|nr\.?|no\.?|s)?\s*#?\s*(\d+)\.?$`)

// ErrInvalidStoryNumber indicates a Story No. cell that is not a positive integer.
var ErrInvalidStoryNumber = errors.New("story number must be a positive integer")

// ParseStoryNumber accepts "3", "03", "#3", "Story 03" and "S03".
func ParseStoryNumber(text string) (int, error) {
	m := storyNumberPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, ErrInvalidStoryNumber
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, ErrInvalidStoryNumber
	}
	return n, nil
}
