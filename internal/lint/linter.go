package lint

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/narrative"
	"github.com/visualeyes/storylint/internal/storydoc"
	"golang.org/x/sync/errgroup"
)

// Options configures a Linter.
type Options struct {
	Rules RuleConfig
	// Severities overrides rule severities by rule ID; SeverityOff disables a rule.
	Severities map[string]models.Severity
	// Workers bounds concurrent document loads in LintFiles. Zero means GOMAXPROCS.
	Workers int
}

// Linter runs the built-in rules over documents.
type Linter struct {
	opts  Options
	rules []Rule
}

// New validates opts and returns a Linter.
func New(opts Options) (*Linter, error) {
	if len(opts.Rules.Columns) == 0 {
		return nil, ErrNoColumns
	}
	for id := range opts.Severities {
		if _, ok := LookupRule(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, id)
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Linter{opts: opts, rules: Rules()}, nil
}

// Severity returns the effective severity of a rule.
func (l *Linter) Severity(rule Rule) models.Severity {
	if sev, ok := l.opts.Severities[rule.ID()]; ok {
		return sev
	}
	return rule.DefaultSeverity()
}

// TableOptions returns the header mapping the linter expects documents to use.
func (l *Linter) TableOptions() storydoc.Options {
	return storydoc.Options{
		Columns:        l.opts.Rules.Columns,
		StoryNoAliases: l.opts.Rules.StoryNoAliases,
	}
}

// Input names the files that make up one document.
type Input struct {
	TablePath      string
	NarrativePaths []string
}

// Load reads the table and narratives named by in.
func (l *Linter) Load(in Input) (*models.Document, error) {
	table, err := storydoc.ReadTable(in.TablePath, l.TableOptions())
	if err != nil {
		return nil, err
	}
	narratives, err := narrative.ReadAll(in.NarrativePaths)
	if err != nil {
		return nil, err
	}
	return &models.Document{Table: table, Narratives: narratives}, nil
}

// Lint runs every enabled rule over doc.
func (l *Linter) Lint(ctx context.Context, doc *models.Document) *Report {
	report := &Report{Path: doc.Table.Path, StartedAt: time.Now().UTC()}
	cfg := l.opts.Rules

	for _, rule := range l.rules {
		if ctx.Err() != nil {
			break
		}
		sev := l.Severity(rule)
		if sev == models.SeverityOff {
			continue
		}
		for _, f := range rule.Check(doc, &cfg) {
			f.Severity = sev
			report.Findings = append(report.Findings, f)
		}
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.Path != b.Path {
			// the table first, then narratives by path
			if a.Path == report.Path || b.Path == report.Path {
				return a.Path == report.Path
			}
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})

	slog.Debug("linted document",
		"path", report.Path,
		"stories", len(doc.Table.Stories),
		"narratives", len(doc.Narratives),
		"findings", len(report.Findings))
	return report
}

// Result pairs an input with its report or the error that prevented linting it.
type Result struct {
	Input  Input
	Report *Report
	Err    error
}

// LintFiles loads and lints every input concurrently. Results keep input order.
// Per-input read errors are carried in Result.Err; the returned error is only set
// when ctx is cancelled.
func (l *Linter) LintFiles(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)
	for i, in := range inputs {
		results[i].Input = in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := l.Load(in)
			if err != nil {
				slog.Warn("failed to load document", "path", in.TablePath, "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Report = l.Lint(gctx, doc)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
