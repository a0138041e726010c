package runs

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/report"
)

// DefaultLimit is how many runs list shows without --limit.
const DefaultLimit = 20

// ListCmd returns the runs list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().IntP("limit", "n", DefaultLimit, "Maximum number of runs (0 for all)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (run IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd.Flags())

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		if fmtErr := formatter.Error("INVALID_LIMIT", "limit cannot be negative"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitUsage, fmt.Errorf("invalid limit %d", limit))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()

	runs, err := cliInstance.App.RunService.List(ctx, limit)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		if runs == nil {
			runs = []*models.LintRun{}
		}
		return formatter.JSONData(runs)
	}

	if formatter.Quiet {
		for _, r := range runs {
			fmt.Println(r.ID)
		}
		return nil
	}

	report.NewPrinter(os.Stdout).RunList(runs)
	return nil
}
