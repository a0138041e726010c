package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/database"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/services/catalog"
	"github.com/visualeyes/storylint/internal/services/runs"
	"github.com/visualeyes/storylint/internal/testutil"
)

type fixture struct {
	catalog catalog.Service
	runs    runs.Service
	table   string
}

// newFixture creates a catalog, optionally importing the sample table.
func newFixture(t *testing.T, withStories bool) fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { _ = db.Close() })

	repo := database.NewRepository(db)
	f := fixture{catalog: catalog.NewService(repo), runs: runs.NewService(repo)}
	if !withStories {
		return f
	}

	dir := t.TempDir()
	f.table = testutil.WriteFile(t, dir, "stories.md", testutil.SampleTable)
	narrative := testutil.WriteFile(t, dir, "narratives/onset.md", testutil.SampleNarrative)

	opts, err := config.Default().LintOptions()
	if err != nil {
		t.Fatalf("LintOptions() failed: %v", err)
	}
	linter, err := lint.New(opts)
	if err != nil {
		t.Fatalf("lint.New() failed: %v", err)
	}
	doc, err := linter.Load(lint.Input{TablePath: f.table, NarrativePaths: []string{narrative}})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if _, err := f.catalog.Import(context.Background(), catalog.ImportRequest{Document: doc, Checksum: "x"}); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	return f
}

// start builds a sized model and runs its Init command.
func start(t *testing.T, f fixture) Model {
	t.Helper()
	m := New(context.Background(), f.catalog, f.runs, config.Default())
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return run(t, m, m.Init())
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// run executes cmd synchronously and feeds its message back into m.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command, got nil")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "down":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
	case "ctrl+c":
		return tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl})
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Text: s, Code: r})
}

func visibleNumbers(m Model) []int {
	var out []int
	for _, d := range m.visible {
		out = append(out, d.Story.Number)
	}
	return out
}

// ============================================================================
// LOADING AND EMPTY STATES
// ============================================================================

func TestView_BeforeWindowSize(t *testing.T) {
	f := newFixture(t, false)
	m := New(context.Background(), f.catalog, f.runs, nil)

	if got := m.render(); got != "Loading..." {
		t.Errorf("Expected Loading..., got %q", got)
	}
}

func TestView_EmptyCatalog(t *testing.T) {
	m := start(t, newFixture(t, false))

	out := m.render()
	if !strings.Contains(out, "No stories in the catalog") {
		t.Errorf("Expected empty catalog hint, got %q", out)
	}
	if !strings.Contains(out, "storylint import") {
		t.Errorf("Expected import hint, got %q", out)
	}

	// navigation on an empty list must not panic
	for _, k := range []string{"j", "k", "G", "g", "a", "tab", "esc"} {
		m = send(t, m, key(k))
	}
	if m.current() != nil {
		t.Errorf("Expected no selection, got %v", m.current())
	}
}

// ============================================================================
// NAVIGATION
// ============================================================================

func TestNavigation(t *testing.T) {
	m := start(t, newFixture(t, true))

	if len(m.visible) != 6 {
		t.Fatalf("Expected 6 stories, got %d", len(m.visible))
	}
	if !strings.Contains(m.render(), "calibrate the tracker quickly") {
		t.Error("Expected story 1 in the detail pane")
	}

	tests := []struct {
		key  string
		want int
	}{
		{"k", 1}, // stays at the top
		{"j", 2},
		{"down", 3},
		{"G", 6},
		{"j", 6}, // stays at the bottom
		{"g", 1},
	}
	for _, tt := range tests {
		m = send(t, m, key(tt.key))
		if got := m.current().Story.Number; got != tt.want {
			t.Fatalf("After %q expected story %d, got %d", tt.key, tt.want, got)
		}
	}
}

func TestDetailShowsNarrative(t *testing.T) {
	m := start(t, newFixture(t, true))
	m = send(t, m, key("j"))
	m = send(t, m, key("j"))

	out := m.render()
	if !strings.Contains(out, "Story 3") {
		t.Errorf("Expected story 3 header, got %q", out)
	}
	if !strings.Contains(out, "Stimulus onset markers") {
		t.Errorf("Expected narrative title, got %q", out)
	}
}

func TestWindowResize(t *testing.T) {
	m := start(t, newFixture(t, true))

	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	if m.detail.Width() != m.detailWidth() {
		t.Errorf("Expected viewport width %d, got %d", m.detailWidth(), m.detail.Width())
	}
	if m.detail.Height() != 10 {
		t.Errorf("Expected viewport height 10, got %d", m.detail.Height())
	}
	lines := strings.Split(m.render(), "\n")
	if len(lines) != 12 {
		t.Errorf("Expected 12 rendered lines, got %d", len(lines))
	}
}

// ============================================================================
// AUTHOR FILTER
// ============================================================================

func TestAuthorFilter(t *testing.T) {
	m := start(t, newFixture(t, true))

	if diff := cmp.Diff([]string{"AL", "JS", "MK"}, m.authors); diff != "" {
		t.Fatalf("Authors mismatch (-want +got):\n%s", diff)
	}

	steps := []struct {
		key  string
		want []int
	}{
		{"a", []int{4, 6}},
		{"a", []int{2, 5}},
		{"a", []int{1, 3}},
		{"a", []int{1, 2, 3, 4, 5, 6}}, // wraps to all
		{"a", []int{4, 6}},
		{"esc", []int{1, 2, 3, 4, 5, 6}},
	}
	for i, step := range steps {
		m = send(t, m, key(step.key))
		if diff := cmp.Diff(step.want, visibleNumbers(m)); diff != "" {
			t.Fatalf("Step %d (%s) mismatch (-want +got):\n%s", i, step.key, diff)
		}
	}
}

func TestAuthorFilterHeader(t *testing.T) {
	m := start(t, newFixture(t, true))
	m = send(t, m, key("a"))

	out := m.render()
	if !strings.Contains(out, "2 of 6 stories") {
		t.Errorf("Expected filtered count, got %q", out)
	}
	if !strings.Contains(out, "author: AL") {
		t.Errorf("Expected active author, got %q", out)
	}
}

// ============================================================================
// FINDINGS PANE
// ============================================================================

func TestFindingsPane_NoRun(t *testing.T) {
	m := start(t, newFixture(t, true))

	updated, cmd := m.Update(key("tab"))
	m = updated.(Model)
	if !m.showFindings {
		t.Fatal("Expected findings pane to be open")
	}
	m = run(t, m, cmd)

	if !strings.Contains(m.render(), "No recorded run") {
		t.Errorf("Expected no-run hint, got %q", m.render())
	}

	// cached: toggling again does not reload
	m = send(t, m, key("tab"))
	_, cmd = m.Update(key("tab"))
	if cmd != nil {
		t.Error("Expected the cached run to be reused")
	}
}

func TestFindingsPane_LatestRun(t *testing.T) {
	f := newFixture(t, true)
	report := &lint.Report{
		Path:      f.table,
		StartedAt: time.Now().UTC(),
		Findings: []*models.Finding{{
			Rule: "empty-cell", Severity: models.SeverityError, Path: f.table,
			Line: 5, StoryNumber: 1, Message: "Skill Level is empty",
		}},
	}
	if _, err := f.runs.Record(context.Background(), f.table, report); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	m := start(t, f)
	updated, cmd := m.Update(key("tab"))
	m = run(t, updated.(Model), cmd)

	if !strings.Contains(m.render(), "Skill Level is empty") {
		t.Errorf("Expected the story 1 finding, got %q", m.render())
	}

	m = send(t, m, key("j"))
	if strings.Contains(m.render(), "Skill Level is empty") {
		t.Error("Expected story 2 to hide story 1's finding")
	}
}

func TestFindingsPane_FollowsSelectionAcrossDocuments(t *testing.T) {
	f := newFixture(t, true)
	other := &models.Document{Table: &models.Table{
		Path: "zz.md",
		Stories: []*models.Story{
			{Number: 1, Author: "RB", User: "Reviewer", Goal: "read findings", DesiredFeature: "a pane", SkillLevel: "novice", Line: 3},
		},
	}}
	if _, err := f.catalog.Import(context.Background(), catalog.ImportRequest{Document: other, Checksum: "y"}); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	m := start(t, f)
	updated, cmd := m.Update(key("tab"))
	m = run(t, updated.(Model), cmd)

	updated, cmd = m.Update(key("G"))
	m = updated.(Model)
	if got := m.current().DocumentPath; got != "zz.md" {
		t.Fatalf("Expected the last story to come from zz.md, got %s", got)
	}
	if cmd == nil {
		t.Fatal("Expected moving to another document to load its run")
	}
	m = run(t, m, cmd)

	if !strings.Contains(m.render(), "No recorded run for zz.md") {
		t.Errorf("Expected the no-run hint for zz.md, got %q", m.render())
	}

	// back in the first document the cached run is reused
	_, cmd = m.Update(key("g"))
	if cmd != nil {
		t.Error("Expected no reload for a cached document")
	}
}

// ============================================================================
// HELP AND QUIT
// ============================================================================

func TestHelp(t *testing.T) {
	m := start(t, newFixture(t, true))

	m = send(t, m, key("?"))
	if !strings.Contains(m.render(), "Keyboard shortcuts") {
		t.Fatal("Expected help overlay")
	}

	// keys other than close are swallowed while help is open
	m = send(t, m, key("j"))
	if m.current().Story.Number != 1 {
		t.Error("Expected navigation to be ignored under help")
	}

	m = send(t, m, key("esc"))
	if m.showHelp {
		t.Error("Expected esc to close help")
	}
}

func TestQuit(t *testing.T) {
	m := start(t, newFixture(t, true))

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("Expected quit command for %q", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected tea.QuitMsg for %q", k)
		}
	}
}

func TestCustomKeyMappings(t *testing.T) {
	f := newFixture(t, true)
	cfg := config.Default()
	cfg.KeyMappings.NextStory = "n"

	m := New(context.Background(), f.catalog, f.runs, cfg)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = run(t, m, m.Init())

	m = send(t, m, key("n"))
	if got := m.current().Story.Number; got != 2 {
		t.Errorf("Expected n to move to story 2, got %d", got)
	}
	m = send(t, m, key("j"))
	if got := m.current().Story.Number; got != 2 {
		t.Errorf("Expected j to be unbound, got story %d", got)
	}
}
