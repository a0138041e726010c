package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/visualeyes/storylint/internal/tui/theme"
)

// helpBox lists the configured key bindings.
func (m Model) helpBox() string {
	k := m.keys
	rows := []struct{ key, action string }{
		{k.NextStory + " / down", "next story"},
		{k.PrevStory + " / up", "previous story"},
		{k.FirstStory + " / " + k.LastStory, "first / last story"},
		{k.ScrollDown + " / " + k.ScrollUp, "scroll the story"},
		{k.ToggleFindings, "toggle findings of the latest run"},
		{k.CycleAuthor, "filter by the next author"},
		{k.ClearFilter, "clear the author filter"},
		{k.ShowHelp, "close this help"},
		{k.Quit + " / ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight))
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-16s", r.key)), r.action)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(1, 2).
		Render(strings.TrimRight(b.String(), "\n"))
}
