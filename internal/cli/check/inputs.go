package check

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/narrative"
)

// addNarrativeFlags registers the flags naming narrative files.
func addNarrativeFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("narrative", "n", nil, "Narrative file elaborating a story (repeatable)")
	cmd.Flags().String("narrative-dir", "", "Directory of narrative files (matched with lint.narrative_glob)")
}

// narrativePaths collects --narrative files and the files matched in --narrative-dir.
func narrativePaths(cmd *cobra.Command, cfg *config.Config) ([]string, error) {
	paths, _ := cmd.Flags().GetStringArray("narrative")
	dir, _ := cmd.Flags().GetString("narrative-dir")
	if dir == "" {
		return paths, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("narrative directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("narrative directory: %s is not a directory", dir)
	}

	matched, err := narrative.Glob(dir, cfg.Lint.NarrativeGlob)
	if err != nil {
		return nil, err
	}
	return append(paths, matched...), nil
}

// buildInputs pairs every table with the same narratives.
func buildInputs(tables, narratives []string) []lint.Input {
	inputs := make([]lint.Input, 0, len(tables))
	for _, t := range tables {
		inputs = append(inputs, lint.Input{TablePath: t, NarrativePaths: narratives})
	}
	return inputs
}

// strictMode is --strict or lint.strict from the configuration.
func strictMode(cmd *cobra.Command, cfg *config.Config) bool {
	strict, _ := cmd.Flags().GetBool("strict")
	return strict || cfg.Lint.Strict
}
