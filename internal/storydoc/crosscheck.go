package storydoc

import (
	"fmt"

	"github.com/visualeyes/storylint/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// crossCheck parses src with goldmark and compares its first table with the scan.
func crossCheck(src []byte, st *scannedTable) []models.ParseNote {
	doc := markdown.Parser().Parse(text.NewReader(src))

	var table *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*east.Table); ok {
			table = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if table == nil {
		return []models.ParseNote{{
			Line:    st.headerLine,
			Message: "markdown renderers do not display this as a table; check the delimiter row",
		}}
	}

	var notes []models.ParseNote
	headerCells, rows := 0, 0
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *east.TableHeader:
			headerCells = child.ChildCount()
		case *east.TableRow:
			rows++
		}
	}

	if headerCells != len(st.header) {
		notes = append(notes, models.ParseNote{
			Line:    st.headerLine,
			Message: fmt.Sprintf("rendered header has %d columns but the source header has %d", headerCells, len(st.header)),
		})
	}
	if rows != len(st.rows) {
		notes = append(notes, models.ParseNote{
			Line:    st.headerLine,
			Message: fmt.Sprintf("rendered table has %d rows but %d row lines were found", rows, len(st.rows)),
		})
	}
	return notes
}
