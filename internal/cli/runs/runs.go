// Package runs holds the commands that read recorded lint runs.
package runs

import "github.com/spf13/cobra"

// RunsCmd returns the runs parent command
func RunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded lint runs",
		Long:  "List and show lint runs stored with storylint lint --record.",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
