// Package story holds the commands that read catalogued stories.
package story

import "github.com/spf13/cobra"

// StoryCmd returns the story parent command
func StoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Browse catalogued stories",
		Long:  "List and show stories stored by storylint import.",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}
