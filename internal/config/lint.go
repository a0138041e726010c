package config

import (
	"fmt"
	"regexp"

	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
)

const (
	defaultFirstNumber   = models.DefaultFirstStoryNumber
	defaultAuthorPattern = models.DefaultAuthorPattern
)

func defaultColumns() []string        { return models.DefaultColumns() }
func defaultStoryNoAliases() []string { return models.DefaultStoryNoAliases() }

// LintOptions converts the table, authors, rules and lint sections into
// linter options.
func (c *Config) LintOptions() (lint.Options, error) {
	pattern, err := regexp.Compile(c.Authors.Pattern)
	if err != nil {
		return lint.Options{}, fmt.Errorf("authors.pattern: %w", err)
	}

	severities := make(map[string]models.Severity, len(c.Rules))
	for id, value := range c.Rules {
		sev, err := models.ParseSeverity(value)
		if err != nil {
			return lint.Options{}, fmt.Errorf("rules.%s: %w", id, err)
		}
		severities[id] = sev
	}

	return lint.Options{
		Rules: lint.RuleConfig{
			Columns:        c.Table.Columns,
			StoryNoAliases: c.Table.StoryNoAliases,
			FirstNumber:    c.Table.FirstNumber,
			AuthorPattern:  pattern,
			Roster:         c.Authors.Roster,
		},
		Severities: severities,
		Workers:    c.Lint.Workers,
	}, nil
}
