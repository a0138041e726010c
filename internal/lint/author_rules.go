package lint

import (
	"fmt"
	"strings"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// author-format
// ============================================================================

type authorFormatRule struct{}

func (authorFormatRule) ID() string                       { return "author-format" }
func (authorFormatRule) DefaultSeverity() models.Severity { return models.SeverityWarning }
func (authorFormatRule) Description() string {
	return "Author cells hold initials matching the configured pattern"
}

func (r authorFormatRule) Check(doc *models.Document, cfg *RuleConfig) []*models.Finding {
	if cfg.AuthorPattern == nil {
		return nil
	}
	var findings []*models.Finding
	for _, s := range doc.Table.Stories {
		if s.Author == "" || cfg.AuthorPattern.MatchString(s.Author) {
			continue
		}
		findings = append(findings, finding(r, doc.Table.Path, s.Line, s.Number,
			fmt.Sprintf("author %q does not look like initials (%s)", s.Author, cfg.AuthorPattern.String())))
	}
	return findings
}

// ============================================================================
// author-referenced
// ============================================================================

type authorReferencedRule struct{}

func (authorReferencedRule) ID() string                       { return "author-referenced" }
func (authorReferencedRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (authorReferencedRule) Description() string {
	return "every author referenced by a narrative or the roster appears in at least one row"
}

// Initials compare case-insensitively, the same way the catalog filters by author.
func (r authorReferencedRule) Check(doc *models.Document, cfg *RuleConfig) []*models.Finding {
	known := make(map[string]bool)
	for _, a := range doc.Table.Authors() {
		known[strings.ToUpper(a)] = true
	}

	var findings []*models.Finding
	for _, n := range doc.Narratives {
		if n.Author == "" || known[strings.ToUpper(n.Author)] {
			continue
		}
		findings = append(findings, finding(r, n.Path, lineOrFirst(n.TitleLine), n.StoryNumber,
			fmt.Sprintf("author %q does not appear in any row of %s", n.Author, doc.Table.Path)))
	}

	reported := make(map[string]bool)
	for _, a := range cfg.Roster {
		key := strings.ToUpper(a)
		if known[key] || reported[key] {
			continue
		}
		reported[key] = true
		findings = append(findings, finding(r, doc.Table.Path, doc.Table.HeaderLine, 0,
			fmt.Sprintf("roster author %q does not appear in any row", a)))
	}
	return findings
}

func lineOrFirst(line int) int {
	if line <= 0 {
		return 1
	}
	return line
}
