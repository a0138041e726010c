// Package report turns lint results, stories and runs into terminal or JSON output.
package report

import (
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
)

// FileSummary is the outcome for one table in a lint invocation.
type FileSummary struct {
	Path     string            `json:"path"`
	Counts   models.Counts     `json:"counts"`
	Findings []*models.Finding `json:"findings"`
	Error    string            `json:"error,omitempty"`
	RunID    string            `json:"run_id,omitempty"`
}

// Summary is the JSON payload of the lint command.
type Summary struct {
	Files  []FileSummary `json:"files"`
	Counts models.Counts `json:"counts"`
	Strict bool          `json:"strict"`
	Failed bool          `json:"failed"`
}

// Summarize folds lint results into a Summary. A file that could not be read
// counts as failed.
func Summarize(results []lint.Result, strict bool) *Summary {
	s := &Summary{Strict: strict, Files: make([]FileSummary, 0, len(results))}
	for _, res := range results {
		fs := FileSummary{Path: res.Input.TablePath, Findings: []*models.Finding{}}
		if res.Err != nil {
			fs.Error = res.Err.Error()
			s.Failed = true
		}
		if res.Report != nil {
			fs.Counts = res.Report.Counts()
			if res.Report.Findings != nil {
				fs.Findings = res.Report.Findings
			}
			if res.Report.Failed(strict) {
				s.Failed = true
			}
		}
		s.Counts.Errors += fs.Counts.Errors
		s.Counts.Warnings += fs.Counts.Warnings
		s.Counts.Infos += fs.Counts.Infos
		s.Files = append(s.Files, fs)
	}
	return s
}

// SetRunID attaches a recorded run ID to the file with the given path.
func (s *Summary) SetRunID(path, id string) {
	for i := range s.Files {
		if s.Files[i].Path == path {
			s.Files[i].RunID = id
		}
	}
}
