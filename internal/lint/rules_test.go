package lint

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/narrative"
	"github.com/visualeyes/storylint/internal/storydoc"
)

const header = "| Story No. | Author | User | Goal | Desired Feature | Skill Level |\n|---|---|---|---|---|---|\n"

const cleanTable = header +
	"| 01 | AK | PhD student | Quick inspection | Plot raw gaze | Python |\n" +
	"| 02 | LM | Lab manager | Calibration check | Accuracy summary | Basic scripting |\n" +
	"| 03 | JS | Postdoc | Detect outliers | Flag off-screen trials | Expert |\n"

// ============================================================================
// TEST HELPERS
// ============================================================================

func mustTable(t *testing.T, src string) *models.Table {
	t.Helper()
	table, err := storydoc.ParseTable("stories.md", []byte(src), storydoc.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	return table
}

func mustNarrative(t *testing.T, path, src string) *models.Narrative {
	t.Helper()
	n, err := narrative.Parse(path, []byte(src))
	if err != nil {
		t.Fatalf("narrative.Parse failed: %v", err)
	}
	return n
}

func lintDoc(t *testing.T, doc *models.Document, opts Options) *Report {
	t.Helper()
	if len(opts.Rules.Columns) == 0 {
		opts.Rules = DefaultRuleConfig()
	}
	l, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l.Lint(context.Background(), doc)
}

func messages(findings []*models.Finding) string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Message)
	}
	return strings.Join(out, "\n")
}

// ============================================================================
// TEST CASES
// ============================================================================

func TestCleanTableHasNoFindings(t *testing.T) {
	t.Parallel()

	report := lintDoc(t, &models.Document{Table: mustTable(t, cleanTable)}, Options{})
	if len(report.Findings) != 0 {
		t.Fatalf("Expected no findings, got:\n%s", messages(report.Findings))
	}
	if report.Failed(true) {
		t.Error("clean report should not fail in strict mode")
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   string
		rule    string
		count   int
		message string
	}{
		{
			name:    "missing column",
			table:   "| Story No. | Author | User | Goal | Desired Feature |\n|---|---|---|---|---|\n| 1 | AB | u | g | f |\n",
			rule:    "table-header",
			count:   2,
			message: `missing column "Skill Level"`,
		},
		{
			name:    "unexpected column",
			table:   "| Story No. | Author | User | Goal | Desired Feature | Skill Level | Notes |\n|---|---|---|---|---|---|---|\n| 1 | AB | u | g | f | s | n |\n",
			rule:    "table-header",
			count:   2,
			message: `unexpected column "Notes"`,
		},
		{
			name:    "reordered columns",
			table:   "| Author | Story No. | User | Goal | Desired Feature | Skill Level |\n|---|---|---|---|---|---|\n| AB | 1 | u | g | f | s |\n",
			rule:    "table-header",
			count:   2,
			message: `column "Story No." is in position 2, expected 1`,
		},
		{
			name:    "short and long rows",
			table:   header + "| 1 | AB | u | g | f |\n| 2 | CD | u | g | f | s | x |\n",
			rule:    "column-count",
			count:   2,
			message: "row has 5 cells, expected 6",
		},
		{
			name:    "empty cell",
			table:   header + "| 1 | AB |  | g | f | s |\n",
			rule:    "empty-cell",
			count:   1,
			message: `"User" cell is empty`,
		},
		{
			name:    "placeholder cell",
			table:   header + "| 1 | AB | u | g | TBD | s |\n",
			rule:    "empty-cell",
			count:   1,
			message: `"Desired Feature" cell holds placeholder "TBD"`,
		},
		{
			name:    "bad number",
			table:   header + "| one | AB | u | g | f | s |\n",
			rule:    "story-number-format",
			count:   1,
			message: `Story No. "one" is not a positive integer`,
		},
		{
			name:    "duplicate number",
			table:   header + "| 1 | AB | u | g | f | s |\n| 2 | AB | u | g | f | s |\n| 2 | CD | u | g | f | s |\n",
			rule:    "story-number-unique",
			count:   1,
			message: "Story No. 2 is already used on line 4",
		},
		{
			name:    "gap in sequence",
			table:   header + "| 1 | AB | u | g | f | s |\n| 3 | AB | u | g | f | s |\n| 4 | CD | u | g | f | s |\n",
			rule:    "story-number-sequential",
			count:   1,
			message: "Story No. 3 is out of sequence, expected 2",
		},
		{
			name:    "wrong start",
			table:   header + "| 2 | AB | u | g | f | s |\n| 3 | AB | u | g | f | s |\n",
			rule:    "story-number-sequential",
			count:   1,
			message: "Story No. 2 is out of sequence, expected 1",
		},
		{
			name:    "author not initials",
			table:   header + "| 1 | Anna K. | u | g | f | s |\n",
			rule:    "author-format",
			count:   1,
			message: `author "Anna K." does not look like initials`,
		},
		{
			name:    "delimiter mismatch",
			table:   "| Story No. | Author | User | Goal | Desired Feature | Skill Level |\n|---|---|\n| 1 | AB | u | g | f | s |\n",
			rule:    "table-parse",
			count:   2,
			message: "delimiter row has 2 cells but the header has 6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := lintDoc(t, &models.Document{Table: mustTable(t, tt.table)}, Options{})
			got := report.ByRule(tt.rule)
			if len(got) != tt.count {
				t.Fatalf("Expected %d %s findings, got %d:\n%s", tt.count, tt.rule, len(got), messages(got))
			}
			if !strings.Contains(messages(got), tt.message) {
				t.Errorf("Expected message containing %q, got:\n%s", tt.message, messages(got))
			}
		})
	}
}

func TestSequentialHonoursFirstNumber(t *testing.T) {
	t.Parallel()

	cfg := DefaultRuleConfig()
	cfg.FirstNumber = 10
	table := mustTable(t, header+"| 10 | AB | u | g | f | s |\n| 11 | AB | u | g | f | s |\n")

	report := lintDoc(t, &models.Document{Table: table}, Options{Rules: cfg})
	if got := report.ByRule("story-number-sequential"); len(got) != 0 {
		t.Errorf("Expected no sequence findings, got:\n%s", messages(got))
	}
}

func TestAuthorReferenced(t *testing.T) {
	t.Parallel()

	cfg := DefaultRuleConfig()
	cfg.Roster = []string{"AK", "ZZ", "ZZ"}
	doc := &models.Document{
		Table: mustTable(t, cleanTable),
		Narratives: []*models.Narrative{
			mustNarrative(t, "n1.md", "---\nstory: 1\nauthor: AK\n---\n# One\n\ntext\n"),
			mustNarrative(t, "n2.md", "---\nstory: 2\nauthor: QQ\n---\n# Two\n\ntext\n"),
		},
	}

	report := lintDoc(t, doc, Options{Rules: cfg})
	got := report.ByRule("author-referenced")
	if len(got) != 2 {
		t.Fatalf("Expected 2 findings, got:\n%s", messages(got))
	}
	if !strings.Contains(messages(got), `author "QQ" does not appear`) {
		t.Errorf("missing narrative author finding:\n%s", messages(got))
	}
	if !strings.Contains(messages(got), `roster author "ZZ"`) {
		t.Errorf("missing roster finding:\n%s", messages(got))
	}
}

func TestAuthorInitialsIgnoreCase(t *testing.T) {
	t.Parallel()

	cfg := DefaultRuleConfig()
	cfg.Roster = []string{"js"}
	doc := &models.Document{
		Table: mustTable(t, cleanTable),
		Narratives: []*models.Narrative{
			mustNarrative(t, "n1.md", "---\nstory: 1\nauthor: ak\n---\n# One\n\ntext\n"),
			mustNarrative(t, "n2.md", "---\nstory: 2\nauthor: Lm\n---\n# Two\n\ntext\n"),
		},
	}

	report := lintDoc(t, doc, Options{Rules: cfg})
	if got := report.ByRule("author-referenced"); len(got) != 0 {
		t.Errorf("Expected lowercase initials to match their rows, got:\n%s", messages(got))
	}
	if got := report.ByRule("narrative-author"); len(got) != 0 {
		t.Errorf("Expected narrative authors to match regardless of case, got:\n%s", messages(got))
	}
}

func TestNarrativeRules(t *testing.T) {
	t.Parallel()

	doc := &models.Document{
		Table: mustTable(t, cleanTable),
		Narratives: []*models.Narrative{
			mustNarrative(t, "a.md", "---\nstory: 1\nauthor: LM\n---\n# Quick inspection\n\nDuring the session.\n"),
			mustNarrative(t, "b.md", "# Story 09: unknown\n\nText\n"),
			mustNarrative(t, "c.md", "Just text without a story\n"),
			mustNarrative(t, "d.md", "# Story 01 again\n"),
		},
	}

	report := lintDoc(t, doc, Options{})

	if got := report.ByRule("narrative-story"); len(got) != 2 {
		t.Errorf("Expected 2 narrative-story findings, got:\n%s", messages(got))
	}
	if got := report.ByRule("narrative-author"); len(got) != 1 || !strings.Contains(got[0].Message, `"LM" differs from story author "AK"`) {
		t.Errorf("unexpected narrative-author findings:\n%s", messages(got))
	}
	if got := report.ByRule("narrative-body"); len(got) != 1 || got[0].Path != "d.md" {
		t.Errorf("unexpected narrative-body findings:\n%s", messages(got))
	}
	if got := report.ByRule("narrative-duplicate"); len(got) != 1 || got[0].Severity != models.SeverityInfo {
		t.Errorf("unexpected narrative-duplicate findings:\n%s", messages(got))
	}
}

func TestFindingsSortedTableFirst(t *testing.T) {
	t.Parallel()

	doc := &models.Document{
		Table: mustTable(t, header+"| 1 | AB | u | g | f | s |\n| 3 | AB |  | g | f | s |\n"),
		Narratives: []*models.Narrative{
			mustNarrative(t, "a.md", "# Story 7\n\ntext\n"),
		},
	}
	report := lintDoc(t, doc, Options{})
	if len(report.Findings) < 3 {
		t.Fatalf("Expected at least 3 findings, got:\n%s", messages(report.Findings))
	}
	if report.Findings[0].Path != "stories.md" || report.Findings[len(report.Findings)-1].Path != "a.md" {
		t.Errorf("Expected table findings before narrative findings, got %+v", report.Findings)
	}
	// same line: rules in name order
	if report.Findings[0].Rule != "empty-cell" || report.Findings[1].Rule != "story-number-sequential" {
		t.Errorf("Expected empty-cell before story-number-sequential, got %s, %s",
			report.Findings[0].Rule, report.Findings[1].Rule)
	}
}

func TestAuthorFormatWithoutPattern(t *testing.T) {
	t.Parallel()

	cfg := DefaultRuleConfig()
	cfg.AuthorPattern = nil
	report := lintDoc(t, &models.Document{Table: mustTable(t, header+"| 1 | anyone | u | g | f | s |\n")}, Options{Rules: cfg})
	if got := report.ByRule("author-format"); len(got) != 0 {
		t.Errorf("Expected no author-format findings without a pattern, got %d", len(got))
	}

	cfg.AuthorPattern = regexp.MustCompile(`^[a-z]+$`)
	report = lintDoc(t, &models.Document{Table: mustTable(t, header+"| 1 | anyone | u | g | f | s |\n")}, Options{Rules: cfg})
	if got := report.ByRule("author-format"); len(got) != 0 {
		t.Errorf("Expected custom pattern to accept lowercase author, got %d", len(got))
	}
}

func TestRulesSortedAndUnique(t *testing.T) {
	rules := Rules()
	if len(rules) != len(builtin) {
		t.Fatalf("Expected %d rules, got %d", len(builtin), len(rules))
	}
	seen := map[string]bool{}
	for i, r := range rules {
		if seen[r.ID()] {
			t.Errorf("duplicate rule id %s", r.ID())
		}
		seen[r.ID()] = true
		if i > 0 && rules[i-1].ID() >= r.ID() {
			t.Errorf("rules not sorted at %s", r.ID())
		}
		if r.Description() == "" {
			t.Errorf("rule %s has no description", r.ID())
		}
	}
}
