package models

import "time"

// Finding is a single lint result.
type Finding struct {
	Rule        string   `json:"rule"`
	Severity    Severity `json:"severity"`
	Path        string   `json:"path"`
	Line        int      `json:"line,omitempty"`
	StoryNumber int      `json:"story,omitempty"`
	Message     string   `json:"message"`
}

// Counts tallies findings per severity.
type Counts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Total returns the number of counted findings.
func (c Counts) Total() int {
	return c.Errors + c.Warnings + c.Infos
}

// Add counts one finding.
func (c *Counts) Add(sev Severity) {
	switch sev {
	case SeverityError:
		c.Errors++
	case SeverityWarning:
		c.Warnings++
	case SeverityInfo:
		c.Infos++
	}
}

// LintRun is a recorded lint of one table.
type LintRun struct {
	ID           string     `json:"id"`
	DocumentPath string     `json:"document"`
	StartedAt    time.Time  `json:"started_at"`
	Counts       Counts     `json:"counts"`
	Findings     []*Finding `json:"findings,omitempty"`
}

// String returns the run ID.
func (r *LintRun) String() string {
	return r.ID
}

// DocumentRecord is a catalogued story table.
type DocumentRecord struct {
	ID         int       `json:"id"`
	Path       string    `json:"path"`
	Checksum   string    `json:"checksum"`
	ImportedAt time.Time `json:"imported_at"`
	StoryCount int       `json:"story_count"`
}

// GetID returns the document ID so quiet CLI output can print it.
func (d *DocumentRecord) GetID() int {
	return d.ID
}
