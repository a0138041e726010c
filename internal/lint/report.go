package lint

import (
	"time"

	"github.com/visualeyes/storylint/internal/models"
)

// Report is the outcome of linting one document.
type Report struct {
	Path      string            `json:"path"`
	StartedAt time.Time         `json:"started_at"`
	Findings  []*models.Finding `json:"findings"`
}

// Counts tallies findings per severity.
func (r *Report) Counts() models.Counts {
	var c models.Counts
	if r == nil {
		return c
	}
	for _, f := range r.Findings {
		c.Add(f.Severity)
	}
	return c
}

// HasErrors reports whether any finding is an error.
func (r *Report) HasErrors() bool {
	return r.Counts().Errors > 0
}

// Failed reports whether the report should fail a lint run. Strict mode also fails
// on warnings.
func (r *Report) Failed(strict bool) bool {
	c := r.Counts()
	if strict {
		return c.Errors+c.Warnings > 0
	}
	return c.Errors > 0
}

// ByRule returns the findings of a single rule.
func (r *Report) ByRule(id string) []*models.Finding {
	var out []*models.Finding
	for _, f := range r.Findings {
		if f.Rule == id {
			out = append(out, f)
		}
	}
	return out
}
