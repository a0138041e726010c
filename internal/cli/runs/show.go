package runs

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/report"
)

// ShowCmd returns the runs show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded run and its findings",
		Long: `Show one recorded run. The ID may be shortened to any unique prefix
of at least 8 characters.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (full run ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	run, err := cliInstance.App.RunService.Get(ctx, args[0])
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.JSONData(run)
	}
	if formatter.Quiet {
		fmt.Println(run.ID)
		return nil
	}

	report.NewPrinter(os.Stdout).Run(run)
	return nil
}
