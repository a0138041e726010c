package lint

import (
	"fmt"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// story-number-format
// ============================================================================

type storyNumberFormatRule struct{}

func (storyNumberFormatRule) ID() string                       { return "story-number-format" }
func (storyNumberFormatRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (storyNumberFormatRule) Description() string {
	return "Story No. is a positive integer"
}

func (r storyNumberFormatRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	for _, s := range doc.Table.Stories {
		// empty cells belong to empty-cell
		if s.Number == 0 && s.NumberText != "" {
			findings = append(findings, finding(r, doc.Table.Path, s.Line, 0,
				fmt.Sprintf("Story No. %q is not a positive integer", s.NumberText)))
		}
	}
	return findings
}

// ============================================================================
// story-number-unique
// ============================================================================

type storyNumberUniqueRule struct{}

func (storyNumberUniqueRule) ID() string                       { return "story-number-unique" }
func (storyNumberUniqueRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (storyNumberUniqueRule) Description() string {
	return "no two rows share a Story No."
}

func (r storyNumberUniqueRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	firstLine := make(map[int]int)
	for _, s := range doc.Table.Stories {
		if s.Number == 0 {
			continue
		}
		if line, seen := firstLine[s.Number]; seen {
			findings = append(findings, finding(r, doc.Table.Path, s.Line, s.Number,
				fmt.Sprintf("Story No. %d is already used on line %d", s.Number, line)))
			continue
		}
		firstLine[s.Number] = s.Line
	}
	return findings
}

// ============================================================================
// story-number-sequential
// ============================================================================

type storyNumberSequentialRule struct{}

func (storyNumberSequentialRule) ID() string                       { return "story-number-sequential" }
func (storyNumberSequentialRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (storyNumberSequentialRule) Description() string {
	return "Story No. values start at the first number and increase by one in table order"
}

func (r storyNumberSequentialRule) Check(doc *models.Document, cfg *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	seen := make(map[int]bool)
	expected := cfg.FirstNumber
	for _, s := range doc.Table.Stories {
		// unparseable and repeated numbers are reported by their own rules
		if s.Number == 0 || seen[s.Number] {
			continue
		}
		seen[s.Number] = true
		if s.Number != expected {
			findings = append(findings, finding(r, doc.Table.Path, s.Line, s.Number,
				fmt.Sprintf("Story No. %d is out of sequence, expected %d", s.Number, expected)))
		}
		expected = s.Number + 1
	}
	return findings
}
