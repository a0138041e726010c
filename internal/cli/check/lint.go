// Package check holds the commands that read story tables from disk.
package check

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/report"
	"github.com/visualeyes/storylint/internal/services/runs"
)

// ErrLintFailed is returned when a lint run reports failing findings.
var ErrLintFailed = errors.New("lint failed")

// LintCmd returns the lint command
func LintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <table.md> [more tables...]",
		Short: "Check story tables and their narratives",
		Long: `Check one or more user-story tables against the structural rules.

Narratives are shared by every table given. Exit status is 0 when clean,
5 when findings fail the run, 3 when a file is missing and 4 when a file
has no story table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLint,
	}

	addNarrativeFlags(cmd)
	cmd.Flags().Bool("strict", false, "Fail on warnings as well as errors")
	cmd.Flags().Bool("record", false, "Record the run in the catalog")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (counts only)")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd.Flags())

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()
	application := cliInstance.App

	narratives, err := narrativePaths(cmd, application.Config)
	if err != nil {
		return formatter.Fail(err)
	}

	results, err := application.Linter.LintFiles(ctx, buildInputs(args, narratives))
	if err != nil {
		return formatter.Fail(err)
	}

	summary := report.Summarize(results, strictMode(cmd, application.Config))

	if record, _ := cmd.Flags().GetBool("record"); record {
		if err := recordRuns(ctx, application.RunService, results, summary); err != nil {
			return formatter.Fail(err)
		}
	}

	switch {
	case formatter.JSON:
		if err := formatter.JSONData(summary); err != nil {
			return err
		}
	case formatter.Quiet:
		report.Quiet(os.Stdout, summary.Counts)
	default:
		report.NewPrinter(os.Stdout).Summary(summary)
	}

	return lintExit(results, summary)
}

// recordRuns stores one run per linted table and tags the summary with its ID.
func recordRuns(ctx context.Context, svc runs.Service, results []lint.Result, summary *report.Summary) error {
	for _, res := range results {
		if res.Report == nil {
			continue
		}
		run, err := svc.Record(ctx, res.Input.TablePath, res.Report)
		if err != nil {
			return err
		}
		summary.SetRunID(res.Input.TablePath, run.ID)
	}
	return nil
}

// lintExit picks the exit status: a missing or tableless file wins over
// failing findings.
func lintExit(results []lint.Result, summary *report.Summary) error {
	for _, res := range results {
		if res.Err != nil {
			return cli.Exit(cli.Classify(res.Err).Exit, res.Err)
		}
	}
	if summary.Failed {
		return cli.Exit(cli.ExitValidation, ErrLintFailed)
	}
	return nil
}
