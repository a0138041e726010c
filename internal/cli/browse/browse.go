// Package browse opens the interactive story browser.
package browse

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/launcher"
)

// BrowseCmd returns the browse command
func BrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse catalogued stories interactively",
		Long: `Open a full-screen browser over the imported stories. The latest recorded
lint run of a table can be shown next to each story. Press ? inside for keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &cli.OutputFormatter{}

			cliInstance, err := cli.GetCLIFromContext(cmd.Context())
			if err != nil {
				return formatter.Fail(err)
			}
			defer func() {
				if err := cliInstance.Close(); err != nil {
					log.Printf("Error closing CLI: %v", err)
				}
			}()

			if err := launcher.Launch(cmd.Context(), cliInstance.App); err != nil {
				return formatter.Fail(err)
			}
			return nil
		},
	}
}
