// Package narrative reads the free-text Markdown documents that elaborate a single
// story of a requirements table.
package narrative

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/storydoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
)

var (
	titleNumber     = regexp.MustCompile(`(?i)\bstory\s*(?:no\.?\s*)?#?\s*(\d+)`)
	fileNumber      = regexp.MustCompile(`(\d+)`)
	setextUnderline = regexp.MustCompile(`^\s*(=+|-+)\s*$`)
)

// Read reads and parses the narrative at path.
func Read(path string) (*models.Narrative, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read narrative: %w", err)
	}
	n, err := Parse(path, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// ReadAll reads every narrative in paths, stopping at the first error.
func ReadAll(paths []string) ([]*models.Narrative, error) {
	narratives := make([]*models.Narrative, 0, len(paths))
	for _, p := range paths {
		n, err := Read(p)
		if err != nil {
			return nil, err
		}
		narratives = append(narratives, n)
	}
	return narratives, nil
}

// Glob expands a directory into the Markdown files it contains, sorted by name.
func Glob(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.md"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid narrative pattern %q: %w", pattern, err)
	}
	return matches, nil
}

// Parse builds a Narrative from src. The story number comes from the frontmatter,
// then the title, then the file name.
func Parse(path string, src []byte) (*models.Narrative, error) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	fm, body, offset, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	n := &models.Narrative{
		Path:   path,
		Author: norm.NFC.String(strings.TrimSpace(fm.Author)),
		Title:  strings.TrimSpace(fm.Title),
	}

	headingTitle, headingLine := firstHeading(body)
	if headingLine > 0 {
		n.TitleLine = headingLine + offset
		if n.Title == "" {
			n.Title = headingTitle
		}
		body = dropLine(body, headingLine)
	}
	n.Body = strings.TrimSpace(string(body))

	switch {
	case strings.TrimSpace(fm.Story) != "":
		number, err := storydoc.ParseStoryNumber(fm.Story)
		if err != nil {
			return nil, fmt.Errorf("%w: story %q: %w", ErrMalformedFrontMatter, fm.Story, err)
		}
		n.StoryNumber = number
	case titleNumber.MatchString(n.Title):
		n.StoryNumber = atoi(titleNumber.FindStringSubmatch(n.Title)[1])
	default:
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if m := fileNumber.FindStringSubmatch(base); m != nil {
			n.StoryNumber = atoi(m[1])
		}
	}

	return n, nil
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// firstHeading returns the text and 1-based line of the first heading in src.
func firstHeading(src []byte) (string, int) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		title string
		line  int
	)
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(h, src))
		if h.Lines().Len() > 0 {
			seg := h.Lines().At(0)
			line = bytes.Count(src[:seg.Start], []byte("\n")) + 1
		}
		return ast.WalkStop, nil
	})
	return title, line
}

// inlineText concatenates the text segments below node.
func inlineText(node ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// dropLine removes a heading line (and its setext underline) from src.
func dropLine(src []byte, line int) []byte {
	lines := strings.Split(string(src), "\n")
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return src
	}
	end := idx + 1
	if end < len(lines) && setextUnderline.MatchString(lines[end]) && !strings.HasPrefix(strings.TrimSpace(lines[idx]), "#") {
		end++
	}
	out := append(append([]string{}, lines[:idx]...), lines[end:]...)
	return []byte(strings.Join(out, "\n"))
}
