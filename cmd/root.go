// Package cmd assembles the storylint command tree.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli/browse"
	"github.com/visualeyes/storylint/internal/cli/check"
	"github.com/visualeyes/storylint/internal/cli/guide"
	"github.com/visualeyes/storylint/internal/cli/runs"
	"github.com/visualeyes/storylint/internal/cli/setup"
	"github.com/visualeyes/storylint/internal/cli/story"
	"github.com/visualeyes/storylint/internal/cli/styles"
	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/logging"
)

// version is set at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

// logCloser is the open log file, closed after the command finishes.
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "storylint",
	Short: "storylint - a linter and catalog for user-story tables",
	Long: `storylint checks user-story tables written in Markdown and the narratives
that elaborate them, keeps a catalog of imported stories and records lint runs.

Run 'storylint guide' for the table format and workflow.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupAmbient,
}

func init() {
	// finalizers also run when a command fails, unlike post-run hooks
	cobra.OnFinalize(closeLog)

	rootCmd.AddCommand(check.LintCmd())
	rootCmd.AddCommand(check.ImportCmd())
	rootCmd.AddCommand(check.RulesCmd())
	rootCmd.AddCommand(check.WatchCmd())
	rootCmd.AddCommand(story.StoryCmd())
	rootCmd.AddCommand(runs.RunsCmd())
	rootCmd.AddCommand(browse.BrowseCmd())
	rootCmd.AddCommand(setup.InitCmd())
	rootCmd.AddCommand(guide.GuideCmd())

	rootCmd.SetVersionTemplate(fmt.Sprintf("storylint %s\n", version))
}

// setupAmbient installs logging and styles from the configuration. A broken
// config is reported by the command itself, so it only downgrades logging here.
func setupAmbient(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		logging.Discard()
		slog.Debug("config not loaded before command", "error", err)
		return nil
	}

	closer, err := logging.Init(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		logging.Discard()
	} else {
		logCloser = closer
	}

	styles.Init(cfg.ColorScheme)
	slog.Debug("running command", "command", cmd.CommandPath(), "config_sources", cfg.Sources)
	return nil
}

func closeLog() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	logCloser = nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the root command, for documentation generators and tests.
func Root() *cobra.Command {
	return rootCmd
}
