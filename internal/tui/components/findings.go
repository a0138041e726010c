package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/tui/theme"
)

type FindingsProps struct {
	Run         *models.LintRun
	Document    string
	StoryNumber int
	Width       int
	Height      int
}

// RenderFindings renders the latest run's findings for one story. Findings not
// tied to a story are listed after the story's own.
func RenderFindings(props FindingsProps) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight))
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	if props.Run == nil {
		return header.Render("Findings") + "\n" +
			subtle.Render("No recorded run for "+props.Document+". Record one with: storylint lint --record")
	}

	var own, general []*models.Finding
	for _, f := range props.Run.Findings {
		switch f.StoryNumber {
		case props.StoryNumber:
			own = append(own, f)
		case 0:
			general = append(general, f)
		}
	}

	lines := []string{header.Render(fmt.Sprintf("Findings  run %s  %dE %dW %dI",
		shortID(props.Run.ID), props.Run.Counts.Errors, props.Run.Counts.Warnings, props.Run.Counts.Infos))}
	if len(own)+len(general) == 0 {
		lines = append(lines, subtle.Render(fmt.Sprintf("Nothing reported for story %d", props.StoryNumber)))
	}
	for _, f := range append(own, general...) {
		lines = append(lines, severityChip(f.Severity)+" "+truncate(f.Message, props.Width-10))
	}

	if props.Height > 0 && len(lines) > props.Height {
		more := len(lines) - props.Height + 1
		lines = append(lines[:props.Height-1], subtle.Render(fmt.Sprintf("… %d more", more)))
	}
	return strings.Join(lines, "\n")
}

func severityChip(sev models.Severity) string {
	fg, bg := theme.InfoFg, theme.InfoBg
	switch sev {
	case models.SeverityError:
		fg, bg = theme.ErrorFg, theme.ErrorBg
	case models.SeverityWarning:
		fg, bg = theme.WarningFg, theme.WarningBg
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Render(fmt.Sprintf("%-7s", sev.String()))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
