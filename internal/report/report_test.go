package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
)

func sampleResults() []lint.Result {
	return []lint.Result{
		{
			Input: lint.Input{TablePath: "a.md"},
			Report: &lint.Report{Path: "a.md", Findings: []*models.Finding{
				{Rule: "empty-cell", Severity: models.SeverityError, Path: "a.md", Line: 7, Message: "Goal is empty"},
				{Rule: "narrative-body", Severity: models.SeverityWarning, Path: "n/01.md", Message: "narrative has no body"},
			}},
		},
		{
			Input:  lint.Input{TablePath: "b.md"},
			Report: &lint.Report{Path: "b.md"},
		},
		{
			Input: lint.Input{TablePath: "missing.md"},
			Err:   errors.New("open missing.md: no such file or directory"),
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleResults(), false)
	require.Len(t, s.Files, 3)
	assert.Equal(t, models.Counts{Errors: 1, Warnings: 1}, s.Counts)
	assert.True(t, s.Failed)
	assert.NotNil(t, s.Files[1].Findings, "clean files encode an empty list")
	assert.Contains(t, s.Files[2].Error, "no such file")

	s.SetRunID("a.md", "0123456789abcdef")
	assert.Equal(t, "0123456789abcdef", s.Files[0].RunID)
}

func TestSummarizeStrict(t *testing.T) {
	t.Parallel()

	warnOnly := []lint.Result{{
		Input: lint.Input{TablePath: "a.md"},
		Report: &lint.Report{Path: "a.md", Findings: []*models.Finding{
			{Rule: "author-format", Severity: models.SeverityWarning, Path: "a.md", Line: 3},
		}},
	}}

	assert.False(t, Summarize(warnOnly, false).Failed)
	assert.True(t, Summarize(warnOnly, true).Failed)
}

func TestPrinterSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewPrinter(&buf).Summary(Summarize(sampleResults(), false))
	out := buf.String()

	assert.Contains(t, out, "Goal is empty")
	assert.Contains(t, out, "empty-cell")
	assert.Contains(t, out, "n/01.md")
	assert.Contains(t, out, "b.md")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "1 error, 1 warning, 0 infos in 3 files")
	assert.Less(t, strings.Index(out, "a.md"), strings.Index(out, "n/01.md"), "table findings print before narratives")
}

func TestQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Quiet(&buf, models.Counts{Errors: 2, Warnings: 0, Infos: 5})
	assert.Equal(t, "2 0 5\n", buf.String())
}

func TestStoryCard(t *testing.T) {
	t.Parallel()

	detail := &models.StoryDetail{
		DocumentPath: "docs/stories.md",
		Story:        &models.Story{Number: 4, Author: "MK", User: "Researcher", Goal: "export fixations", Line: 10},
		Narratives: []*models.Narrative{
			{Path: "n/04.md", StoryNumber: 4, Title: "Fixation export", Author: "MK", Body: "Export **all** fixations as CSV."},
		},
	}

	card := NewPrinter(&bytes.Buffer{}).StoryCard(detail)
	assert.Contains(t, card, "Story 4")
	assert.Contains(t, card, "stories.md:10")
	assert.Contains(t, card, "export fixations")
	assert.Contains(t, card, "Fixation export")
	assert.Contains(t, card, "(empty)", "missing fields are marked")
	assert.Contains(t, card, "fixations")
}

func TestStoryListEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewPrinter(&buf).StoryList(nil)
	assert.Contains(t, buf.String(), "No stories found")
}

func TestRunList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewPrinter(&buf).RunList([]*models.LintRun{{
		ID:           "0f8fad5b-d9cb-469f-a165-70867728950e",
		DocumentPath: "stories.md",
		StartedAt:    time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Counts:       models.Counts{Errors: 1},
	}})
	out := buf.String()
	assert.Contains(t, out, "0f8fad5b")
	assert.NotContains(t, out, "d9cb", "run IDs are shortened")
	assert.Contains(t, out, "1E 0W 0I")
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", RenderMarkdown("   ", 40))
	assert.Contains(t, RenderMarkdown("plain words", 40), "plain words")
}
