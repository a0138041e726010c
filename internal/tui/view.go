package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/visualeyes/storylint/internal/report"
	"github.com/visualeyes/storylint/internal/tui/components"
	"github.com/visualeyes/storylint/internal/tui/theme"
)

const (
	minListWidth = 24
	maxListWidth = 44
)

// View renders the current state of the application
// This implements the "View" part of the Model-View-Update pattern
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.SetContent(m.render())
	return view
}

func (m Model) listWidth() int {
	return max(minListWidth, min(maxListWidth, m.width/3))
}

func (m Model) detailWidth() int {
	return max(20, m.width-m.listWidth()-3)
}

// bodyHeight is the screen minus the header and status lines.
func (m Model) bodyHeight() int {
	return max(1, m.height-2)
}

func (m Model) findingsHeight() int {
	if !m.showFindings {
		return 0
	}
	return max(4, m.bodyHeight()/3)
}

// layout sizes the detail viewport for the current window and panes.
func (m *Model) layout() {
	m.detail.SetWidth(m.detailWidth())
	h := m.bodyHeight()
	if m.showFindings {
		h -= m.findingsHeight() + 1
	}
	m.detail.SetHeight(max(1, h))
}

// refreshDetail re-renders the selected story into the viewport.
func (m *Model) refreshDetail(resetScroll bool) {
	d := m.current()
	if d == nil {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(report.StoryBody(d, m.detailWidth()-2))
	if resetScroll {
		m.detail.GotoTop()
	}
}

func (m Model) render() string {
	if m.width == 0 {
		return "Loading..."
	}
	if !m.loaded {
		return "Loading stories..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.helpBox())
	}
	if m.err != nil && len(m.stories) == 0 {
		return m.placeCentered(fmt.Sprintf("Could not load the catalog:\n%v\n\npress %s to quit", m.err, m.keys.Quit))
	}
	if len(m.stories) == 0 {
		return m.placeCentered(fmt.Sprintf(
			"No stories in the catalog.\n\nImport a table with:\n  storylint import <table.md>\n\npress %s to quit", m.keys.Quit))
	}

	list := components.RenderStoryList(components.StoryListProps{
		Stories:  m.visible,
		Selected: m.selected,
		Offset:   components.ListOffset(m.selected, m.offset, m.bodyHeight()),
		Width:    m.listWidth(),
		Height:   m.bodyHeight(),
	})

	right := m.detail.View()
	if m.showFindings {
		right = lipgloss.JoinVertical(lipgloss.Left, right, m.separator(), m.findingsPane())
	}

	divider := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Border)).
		Render(strings.TrimRight(strings.Repeat("│\n", m.bodyHeight()), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", divider, " ", right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.statusBar())
}

func (m Model) header() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render("storylint")
	info := fmt.Sprintf("  %d of %d stories", len(m.visible), len(m.stories))
	if author := m.authorFilter(); author != "" {
		info += "  author: " + author
	}
	return title + lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(info)
}

func (m Model) separator() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Border)).
		Render(strings.Repeat("─", m.detailWidth()))
}

func (m Model) findingsPane() string {
	d := m.current()
	if d == nil {
		return ""
	}
	run, ok := m.latest[d.DocumentPath]
	if !ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("Loading findings...")
	}
	return components.RenderFindings(components.FindingsProps{
		Run:         run,
		Document:    d.DocumentPath,
		StoryNumber: d.Story.Number,
		Width:       m.detailWidth(),
		Height:      m.findingsHeight(),
	})
}

func (m Model) statusBar() string {
	left := "storylint - story browser"
	if d := m.current(); d != nil {
		left = d.DocumentPath
	}
	return components.RenderStatusBar(components.StatusBarProps{
		Width: m.width,
		Left:  left,
		Right: "press " + m.keys.ShowHelp + " for help",
	})
}

func (m Model) placeCentered(content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
