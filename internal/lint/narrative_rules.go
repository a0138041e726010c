package lint

import (
	"fmt"
	"strings"

	"github.com/visualeyes/storylint/internal/models"
)

// ============================================================================
// narrative-story
// ============================================================================

type narrativeStoryRule struct{}

func (narrativeStoryRule) ID() string                       { return "narrative-story" }
func (narrativeStoryRule) DefaultSeverity() models.Severity { return models.SeverityError }
func (narrativeStoryRule) Description() string {
	return "every narrative names a story that exists in the table"
}

func (r narrativeStoryRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	for _, n := range doc.Narratives {
		switch {
		case n.StoryNumber == 0:
			findings = append(findings, finding(r, n.Path, lineOrFirst(n.TitleLine), 0,
				"narrative does not name a story (add `story:` frontmatter or a \"Story NN\" title)"))
		case doc.Table.StoryByNumber(n.StoryNumber) == nil:
			findings = append(findings, finding(r, n.Path, lineOrFirst(n.TitleLine), n.StoryNumber,
				fmt.Sprintf("narrative elaborates story %d, which is not in %s", n.StoryNumber, doc.Table.Path)))
		}
	}
	return findings
}

// ============================================================================
// narrative-author
// ============================================================================

type narrativeAuthorRule struct{}

func (narrativeAuthorRule) ID() string                       { return "narrative-author" }
func (narrativeAuthorRule) DefaultSeverity() models.Severity { return models.SeverityWarning }
func (narrativeAuthorRule) Description() string {
	return "a narrative's author matches the author of its story"
}

func (r narrativeAuthorRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	for _, n := range doc.Narratives {
		if n.Author == "" {
			continue
		}
		s := doc.Table.StoryByNumber(n.StoryNumber)
		if s == nil || s.Author == "" || strings.EqualFold(s.Author, n.Author) {
			continue
		}
		findings = append(findings, finding(r, n.Path, lineOrFirst(n.TitleLine), n.StoryNumber,
			fmt.Sprintf("narrative author %q differs from story author %q", n.Author, s.Author)))
	}
	return findings
}

// ============================================================================
// narrative-body
// ============================================================================

type narrativeBodyRule struct{}

func (narrativeBodyRule) ID() string                       { return "narrative-body" }
func (narrativeBodyRule) DefaultSeverity() models.Severity { return models.SeverityWarning }
func (narrativeBodyRule) Description() string {
	return "a narrative has text beyond its title"
}

func (r narrativeBodyRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	for _, n := range doc.Narratives {
		if n.Body == "" {
			findings = append(findings, finding(r, n.Path, lineOrFirst(n.TitleLine), n.StoryNumber,
				"narrative has no body text"))
		}
	}
	return findings
}

// ============================================================================
// narrative-duplicate
// ============================================================================

type narrativeDuplicateRule struct{}

func (narrativeDuplicateRule) ID() string                       { return "narrative-duplicate" }
func (narrativeDuplicateRule) DefaultSeverity() models.Severity { return models.SeverityInfo }
func (narrativeDuplicateRule) Description() string {
	return "each story is elaborated by at most one narrative"
}

func (r narrativeDuplicateRule) Check(doc *models.Document, _ *RuleConfig) []*models.Finding {
	var findings []*models.Finding
	first := make(map[int]string)
	for _, n := range doc.Narratives {
		if n.StoryNumber == 0 {
			continue
		}
		if path, seen := first[n.StoryNumber]; seen {
			findings = append(findings, finding(r, n.Path, lineOrFirst(n.TitleLine), n.StoryNumber,
				fmt.Sprintf("story %d is also elaborated by %s", n.StoryNumber, path)))
			continue
		}
		first[n.StoryNumber] = n.Path
	}
	return findings
}
