package check

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/report"
	"github.com/visualeyes/storylint/internal/watch"
)

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <table.md> [more tables...]",
		Short: "Re-lint tables whenever they or their narratives change",
		Long: `Lint the given tables once, then again every time one of the files changes.
Bursts of writes are folded into a single run. Stop with Ctrl+C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWatch,
	}

	addNarrativeFlags(cmd)
	cmd.Flags().Bool("strict", false, "Fail on warnings as well as errors")
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before re-linting")
	cmd.Flags().Bool("json", false, "Output each run in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (counts only)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
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
	strict := strictMode(cmd, application.Config)
	debounce, _ := cmd.Flags().GetDuration("debounce")

	run := func(ctx context.Context) {
		if err := lintOnce(ctx, application, formatter, args, narratives, strict); err != nil {
			slog.Error("watch lint failed", "error", err)
		}
	}
	run(ctx)

	files := append(append([]string(nil), args...), narratives...)
	w, err := watch.New(files, func(ctx context.Context, changed []string) {
		slog.Info("files changed", "files", changed)
		if !formatter.JSON && !formatter.Quiet {
			fmt.Printf("\n%s\n", time.Now().Format("15:04:05"))
		}
		run(ctx)
	}, watch.WithDebounce(debounce))
	if err != nil {
		return formatter.Fail(err)
	}
	if err := w.Start(ctx); err != nil {
		return formatter.Fail(err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

func lintOnce(ctx context.Context, application *app.App, formatter *cli.OutputFormatter, tables, narratives []string, strict bool) error {
	results, err := application.Linter.LintFiles(ctx, buildInputs(tables, narratives))
	if err != nil {
		return err
	}
	summary := report.Summarize(results, strict)
	switch {
	case formatter.JSON:
		return formatter.JSONData(summary)
	case formatter.Quiet:
		report.Quiet(os.Stdout, summary.Counts)
	default:
		report.NewPrinter(os.Stdout).Summary(summary)
	}
	return nil
}
