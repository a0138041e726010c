package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/visualeyes/storylint/internal/cli/styles"
	"github.com/visualeyes/storylint/internal/models"
)

// Printer writes human-readable output.
type Printer struct {
	Out   io.Writer
	Width int
}

// NewPrinter returns a Printer with the card width as line width.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{Out: out, Width: styles.CardWidth}
}

// Summary prints every file's findings grouped by path followed by a totals line.
func (p *Printer) Summary(s *Summary) {
	for _, file := range s.Files {
		p.file(file)
	}
	fmt.Fprintln(p.Out, p.totals(s))
}

func (p *Printer) file(file FileSummary) {
	if file.Error != "" {
		fmt.Fprintf(p.Out, "%s\n  %s %s\n\n", styles.PathStyle.Render(file.Path),
			styles.SeverityBadge(models.SeverityError), file.Error)
		return
	}
	if len(file.Findings) == 0 {
		fmt.Fprintf(p.Out, "%s %s\n", styles.SuccessStyle.Render("ok"), file.Path)
		return
	}

	current := ""
	for _, f := range file.Findings {
		if f.Path != current {
			if current != "" {
				fmt.Fprintln(p.Out)
			}
			current = f.Path
			fmt.Fprintln(p.Out, styles.PathStyle.Render(f.Path))
		}
		fmt.Fprintf(p.Out, "  %s %s %s %s\n",
			location(f),
			styles.SeverityBadge(f.Severity),
			f.Message,
			styles.SubtitleStyle.Render(f.Rule))
	}
	if file.RunID != "" {
		fmt.Fprintf(p.Out, "  %s\n", styles.SubtitleStyle.Render("recorded as run "+shortID(file.RunID)))
	}
	fmt.Fprintln(p.Out)
}

func location(f *models.Finding) string {
	switch {
	case f.Line > 0:
		return fmt.Sprintf("%4d", f.Line)
	default:
		return "   -"
	}
}

func (p *Printer) totals(s *Summary) string {
	line := fmt.Sprintf("%s, %s, %s in %s",
		plural(s.Counts.Errors, "error"),
		plural(s.Counts.Warnings, "warning"),
		plural(s.Counts.Infos, "info"),
		plural(len(s.Files), "file"))
	if s.Failed {
		return styles.ErrorStyle.Render("FAIL") + " " + line
	}
	return styles.SuccessStyle.Render("PASS") + " " + line
}

// Quiet writes only the totals as "errors warnings infos".
func Quiet(w io.Writer, c models.Counts) {
	fmt.Fprintf(w, "%d %d %d\n", c.Errors, c.Warnings, c.Infos)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ═══════════════════════════════════════════════════════════════════
// STORIES
// ═══════════════════════════════════════════════════════════════════

// StoryList prints one line per story, grouped by document.
func (p *Printer) StoryList(stories []*models.StoryDetail) {
	if len(stories) == 0 {
		fmt.Fprintln(p.Out, styles.SubtitleStyle.Render("No stories found"))
		return
	}

	current := ""
	for _, d := range stories {
		if d.DocumentPath != current {
			if current != "" {
				fmt.Fprintln(p.Out)
			}
			current = d.DocumentPath
			fmt.Fprintln(p.Out, styles.PathStyle.Render(d.DocumentPath))
		}
		s := d.Story
		fmt.Fprintf(p.Out, "  %s %s %s %s\n",
			styles.LabelStyle.Render(fmt.Sprintf("#%-3d", s.Number)),
			styles.SubtitleStyle.Render(fmt.Sprintf("%-4s", s.Author)),
			styles.ValueStyle.Render(s.User+":"),
			truncate(s.Goal, p.Width-24))
	}
}

// StoryCard renders a story with its narratives inside a card.
func (p *Printer) StoryCard(d *models.StoryDetail) string {
	return styles.RenderCard(StoryBody(d, styles.CardWidth-6))
}

// StoryBody lays out a story's fields and rendered narratives for width columns.
func StoryBody(d *models.StoryDetail, width int) string {
	s := d.Story
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Story %d", s.Number)))
	b.WriteString("  ")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s:%d", filepath.Base(d.DocumentPath), s.Line)))
	b.WriteString("\n\n")

	fields := []struct{ label, value string }{
		{"Author", s.Author},
		{"User", s.User},
		{"Goal", s.Goal},
		{"Desired feature", s.DesiredFeature},
		{"Skill level", s.SkillLevel},
	}
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = styles.SubtitleStyle.Render("(empty)")
		} else {
			value = styles.ValueStyle.Render(value)
		}
		fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render(f.label+":"), value)
	}

	b.WriteString(styles.SectionStyle.Render("Narratives"))
	b.WriteString("\n")
	if len(d.Narratives) == 0 {
		b.WriteString(styles.SubtitleStyle.Render("No narrative"))
		return b.String()
	}
	for i, n := range d.Narratives {
		if i > 0 {
			b.WriteString("\n")
		}
		heading := n.Title
		if heading == "" {
			heading = filepath.Base(n.Path)
		}
		b.WriteString(styles.LabelStyle.Render(heading))
		if n.Author != "" {
			b.WriteString(styles.SubtitleStyle.Render(" by " + n.Author))
		}
		b.WriteString("\n")
		b.WriteString(RenderMarkdown(n.Body, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, width int) string {
	if width < 10 {
		width = 10
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// ═══════════════════════════════════════════════════════════════════
// RUNS AND RULES
// ═══════════════════════════════════════════════════════════════════

// RunList prints recorded runs newest first.
func (p *Printer) RunList(runs []*models.LintRun) {
	if len(runs) == 0 {
		fmt.Fprintln(p.Out, styles.SubtitleStyle.Render("No recorded runs"))
		return
	}
	for _, r := range runs {
		fmt.Fprintf(p.Out, "%s  %s  %s  %s\n",
			styles.LabelStyle.Render(shortID(r.ID)),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			countsLine(r.Counts),
			r.DocumentPath)
	}
}

// Run prints a recorded run with its findings.
func (p *Printer) Run(r *models.LintRun) {
	fmt.Fprintf(p.Out, "%s %s\n", styles.TitleStyle.Render("Run"), r.ID)
	fmt.Fprintf(p.Out, "%s %s\n", styles.LabelStyle.Render("Document:"), r.DocumentPath)
	fmt.Fprintf(p.Out, "%s %s\n", styles.LabelStyle.Render("Started:"), r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(p.Out, "%s %s\n\n", styles.LabelStyle.Render("Findings:"), countsLine(r.Counts))
	p.file(FileSummary{Path: r.DocumentPath, Counts: r.Counts, Findings: r.Findings})
}

func countsLine(c models.Counts) string {
	return fmt.Sprintf("%dE %dW %dI", c.Errors, c.Warnings, c.Infos)
}

// RuleInfo describes a rule and its effective severity.
type RuleInfo struct {
	ID          string          `json:"id"`
	Severity    models.Severity `json:"severity"`
	Default     models.Severity `json:"default"`
	Description string          `json:"description"`
}

// Rules prints the rule table.
func (p *Printer) Rules(rules []RuleInfo) {
	for _, r := range rules {
		sev := styles.SeverityBadge(r.Severity)
		if r.Severity != r.Default {
			sev += styles.SubtitleStyle.Render(" (default " + r.Default.String() + ")")
		}
		fmt.Fprintf(p.Out, "%s %s\n    %s\n", styles.LabelStyle.Render(fmt.Sprintf("%-24s", r.ID)), sev, r.Description)
	}
}
