// Package components renders the panes of the story browser.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/tui/theme"
)

type StoryListProps struct {
	Stories  []*models.StoryDetail
	Selected int
	Offset   int
	Width    int
	Height   int
}

// ListOffset returns the first visible row so that selected stays inside a
// window of height rows.
func ListOffset(selected, offset, height int) int {
	if height <= 0 {
		return 0
	}
	if selected < offset {
		return selected
	}
	if selected >= offset+height {
		return selected - height + 1
	}
	return offset
}

// RenderStoryList renders one line per story, the selected one highlighted.
func RenderStoryList(props StoryListProps) string {
	normal := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal)).
		Width(props.Width).
		MaxWidth(props.Width)
	selected := normal.
		Foreground(lipgloss.Color(theme.Highlight)).
		Background(lipgloss.Color(theme.SelectedBg)).
		Bold(true)

	var lines []string
	end := min(props.Offset+props.Height, len(props.Stories))
	for i := props.Offset; i < end; i++ {
		s := props.Stories[i].Story
		line := truncate(fmt.Sprintf("%3d %-4s %s", s.Number, s.Author, s.User), props.Width)
		if i == props.Selected {
			lines = append(lines, selected.Render(line))
		} else {
			lines = append(lines, normal.Render(line))
		}
	}
	for len(lines) < props.Height {
		lines = append(lines, strings.Repeat(" ", props.Width))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
