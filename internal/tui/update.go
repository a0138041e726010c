package tui

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/visualeyes/storylint/internal/tui/components"
)

// Update handles all messages and updates the model accordingly
// This implements the "Update" part of the Model-View-Update pattern
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshDetail(false)
		return m, nil

	case storiesLoadedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err != nil {
			slog.Error("failed to load stories", "error", msg.err)
			return m, nil
		}
		m.setStories(msg.stories)
		m.refreshDetail(true)
		return m, m.ensureRun()

	case runLoadedMsg:
		if msg.err != nil {
			slog.Error("failed to load latest run", "path", msg.path, "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.latest[msg.path] = msg.run
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		switch key {
		case m.keys.ShowHelp, m.keys.Quit, "esc", "enter":
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case m.keys.Quit:
		return m, tea.Quit

	case m.keys.ShowHelp:
		m.showHelp = true

	case m.keys.NextStory, "down":
		m.selectStory(m.selected + 1)
		return m, m.ensureRun()
	case m.keys.PrevStory, "up":
		m.selectStory(m.selected - 1)
		return m, m.ensureRun()
	case m.keys.FirstStory, "home":
		m.selectStory(0)
		return m, m.ensureRun()
	case m.keys.LastStory, "end":
		m.selectStory(len(m.visible) - 1)
		return m, m.ensureRun()

	case m.keys.ScrollDown, "pgdown":
		m.detail.HalfPageDown()
	case m.keys.ScrollUp, "pgup":
		m.detail.HalfPageUp()

	case m.keys.ToggleFindings:
		m.showFindings = !m.showFindings
		m.layout()
		return m, m.ensureRun()

	case m.keys.CycleAuthor:
		m.cycleAuthor()
		m.refreshDetail(true)
		return m, m.ensureRun()

	case m.keys.ClearFilter:
		if m.authorIdx != -1 {
			m.authorIdx = -1
			m.applyFilter()
			m.refreshDetail(true)
			return m, m.ensureRun()
		}
	}

	return m, nil
}

func (m *Model) selectStory(i int) {
	prev := m.selected
	m.moveTo(i)
	m.offset = components.ListOffset(m.selected, m.offset, m.bodyHeight())
	if m.selected != prev {
		m.refreshDetail(true)
	}
}

// ensureRun loads the latest run of the selected story's document when the
// findings pane is open and the run is not cached yet.
func (m Model) ensureRun() tea.Cmd {
	if !m.showFindings {
		return nil
	}
	d := m.current()
	if d == nil {
		return nil
	}
	if _, ok := m.latest[d.DocumentPath]; ok {
		return nil
	}
	return m.loadRun(d.DocumentPath)
}
