// Package lint checks story tables and their narratives against structural rules.
package lint

import (
	"regexp"
	"sort"

	"github.com/visualeyes/storylint/internal/models"
)

// RuleConfig carries the expectations rules check against.
type RuleConfig struct {
	// Columns is the expected header in canonical order.
	Columns []string
	// StoryNoAliases are accepted spellings of the Story No. header.
	StoryNoAliases []string
	// FirstNumber is where story numbering must start.
	FirstNumber int
	// AuthorPattern matches well-formed author initials.
	AuthorPattern *regexp.Regexp
	// Roster lists author initials that must each own at least one story.
	Roster []string
}

// DefaultRuleConfig returns the six-column layout numbered from 1.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Columns:        models.DefaultColumns(),
		StoryNoAliases: models.DefaultStoryNoAliases(),
		FirstNumber:    models.DefaultFirstStoryNumber,
		AuthorPattern:  regexp.MustCompile(models.DefaultAuthorPattern),
	}
}

// Rule is a single structural check.
type Rule interface {
	ID() string
	Description() string
	DefaultSeverity() models.Severity
	// Check returns findings without severities; the linter assigns them.
	Check(doc *models.Document, cfg *RuleConfig) []*models.Finding
}

// builtin is the rule set in registration order.
var builtin = []Rule{
	tableHeaderRule{},
	tableParseRule{},
	columnCountRule{},
	emptyCellRule{},
	storyNumberFormatRule{},
	storyNumberUniqueRule{},
	storyNumberSequentialRule{},
	authorFormatRule{},
	authorReferencedRule{},
	narrativeStoryRule{},
	narrativeAuthorRule{},
	narrativeBodyRule{},
	narrativeDuplicateRule{},
}

// Rules returns the built-in rules sorted by ID.
func Rules() []Rule {
	rules := append([]Rule(nil), builtin...)
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

// LookupRule returns the built-in rule with the given ID.
func LookupRule(id string) (Rule, bool) {
	for _, r := range builtin {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// finding is a small constructor used by every rule.
func finding(rule Rule, path string, line, story int, message string) *models.Finding {
	return &models.Finding{
		Rule:        rule.ID(),
		Path:        path,
		Line:        line,
		StoryNumber: story,
		Message:     message,
	}
}
