package storydoc

import (
	"regexp"
	"strings"
)

var delimiterCell = regexp.MustCompile(`^:?-+:?$`)

// splitLines normalises newlines and splits the source into lines.
func splitLines(src []byte) []string {
	s := strings.ReplaceAll(string(src), "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// isFence reports whether a line opens or closes a fenced code block.
func isFence(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~")
}

// looksLikeRow reports whether a line can be part of a pipe table.
func looksLikeRow(line string) bool {
	return strings.TrimSpace(line) != "" && strings.Contains(line, "|")
}

// isDelimiterRow reports whether a line is a header delimiter such as |---|:--:|.
func isDelimiterRow(line string) bool {
	if !looksLikeRow(line) {
		return false
	}
	cells := splitRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !delimiterCell.MatchString(strings.ReplaceAll(c, " ", "")) {
			return false
		}
	}
	return true
}

// splitRow splits a table line into trimmed cells. Leading and trailing pipes are
// optional and `\|` is a literal pipe inside a cell.
func splitRow(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	if strings.HasSuffix(t, "|") && !strings.HasSuffix(t, `\|`) {
		t = strings.TrimSuffix(t, "|")
	}

	var (
		cells []string
		cur   strings.Builder
	)
	runes := []rune(t)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) && runes[i+1] == '|' {
			cur.WriteRune('|')
			i++
			continue
		}
		if r == '|' {
			cells = append(cells, normalizeCell(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	cells = append(cells, normalizeCell(cur.String()))
	return cells
}

// scannedTable is the raw shape of the first table in a document.
type scannedTable struct {
	header         []string
	headerLine     int
	delimiterCells int
	rows           [][]string
	rowLines       []int
}

// scan locates the first pipe table outside fenced code blocks.
func scan(lines []string) (*scannedTable, bool) {
	inFence := false
	for i := 0; i+1 < len(lines); i++ {
		if isFence(lines[i]) {
			inFence = !inFence
			continue
		}
		if inFence || !looksLikeRow(lines[i]) || !isDelimiterRow(lines[i+1]) {
			continue
		}

		st := &scannedTable{
			header:         splitRow(lines[i]),
			headerLine:     i + 1,
			delimiterCells: len(splitRow(lines[i+1])),
		}
		for j := i + 2; j < len(lines) && looksLikeRow(lines[j]); j++ {
			st.rows = append(st.rows, splitRow(lines[j]))
			st.rowLines = append(st.rowLines, j+1)
		}
		return st, true
	}
	return nil, false
}
