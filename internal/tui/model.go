// Package tui is the interactive story browser.
package tui

import (
	"context"
	"errors"
	"sort"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/services/catalog"
	"github.com/visualeyes/storylint/internal/services/runs"
)

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	catalog catalog.Service
	runs    runs.Service
	keys    config.KeyMappings

	stories []*models.StoryDetail
	visible []*models.StoryDetail
	authors []string
	// authorIdx indexes authors; -1 shows every story.
	authorIdx int
	selected  int
	offset    int

	// latest caches the newest run per document; a nil value means none was recorded.
	latest       map[string]*models.LintRun
	showFindings bool
	showHelp     bool

	loaded bool
	err    error

	width  int
	height int
	detail viewport.Model
}

// New creates the browser model. Stories are loaded by Init.
func New(ctx context.Context, catalogSvc catalog.Service, runSvc runs.Service, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	detail := viewport.New()
	detail.SoftWrap = true

	return Model{
		ctx:       ctx,
		catalog:   catalogSvc,
		runs:      runSvc,
		keys:      cfg.KeyMappings,
		authorIdx: -1,
		latest:    make(map[string]*models.LintRun),
		detail:    detail,
	}
}

// Init loads the catalog.
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.loadStories()
}

// ============================================================================
// COMMANDS
// ============================================================================

type storiesLoadedMsg struct {
	stories []*models.StoryDetail
	err     error
}

type runLoadedMsg struct {
	path string
	run  *models.LintRun
	err  error
}

func (m Model) loadStories() tea.Cmd {
	ctx, svc := m.ctx, m.catalog
	return func() tea.Msg {
		stories, err := svc.ListStories(ctx, catalog.StoryFilter{})
		return storiesLoadedMsg{stories: stories, err: err}
	}
}

func (m Model) loadRun(path string) tea.Cmd {
	ctx, svc := m.ctx, m.runs
	return func() tea.Msg {
		run, err := svc.Latest(ctx, path)
		if errors.Is(err, models.ErrRunNotFound) {
			err = nil
		}
		return runLoadedMsg{path: path, run: run, err: err}
	}
}

// ============================================================================
// SELECTION
// ============================================================================

// current returns the selected story, or nil when nothing is visible.
func (m Model) current() *models.StoryDetail {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return nil
	}
	return m.visible[m.selected]
}

// authorFilter returns the active author, or "" when unfiltered.
func (m Model) authorFilter() string {
	if m.authorIdx < 0 || m.authorIdx >= len(m.authors) {
		return ""
	}
	return m.authors[m.authorIdx]
}

func (m *Model) setStories(stories []*models.StoryDetail) {
	m.stories = stories
	seen := make(map[string]bool)
	m.authors = nil
	for _, d := range stories {
		if d.Story.Author != "" && !seen[d.Story.Author] {
			seen[d.Story.Author] = true
			m.authors = append(m.authors, d.Story.Author)
		}
	}
	sort.Strings(m.authors)
	if m.authorIdx >= len(m.authors) {
		m.authorIdx = -1
	}
	m.applyFilter()
}

func (m *Model) applyFilter() {
	author := m.authorFilter()
	m.visible = nil
	for _, d := range m.stories {
		if author == "" || d.Story.Author == author {
			m.visible = append(m.visible, d)
		}
	}
	m.selected = 0
	m.offset = 0
}

// cycleAuthor advances the author filter, wrapping back to all stories.
func (m *Model) cycleAuthor() {
	if len(m.authors) == 0 {
		return
	}
	m.authorIdx++
	if m.authorIdx >= len(m.authors) {
		m.authorIdx = -1
	}
	m.applyFilter()
}

func (m *Model) moveTo(i int) {
	if len(m.visible) == 0 {
		m.selected = 0
		return
	}
	m.selected = max(0, min(i, len(m.visible)-1))
}
