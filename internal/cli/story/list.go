package story

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/report"
	"github.com/visualeyes/storylint/internal/services/catalog"
)

// ListCmd returns the story list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued stories",
		Long: `List stories, optionally narrowed to one table, an author's initials
(case-insensitive) or a user role prefix.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("document", "d", "", "Only stories of this table")
	cmd.Flags().StringP("author", "a", "", "Only stories by these initials")
	cmd.Flags().StringP("user", "u", "", "Only stories whose user starts with this text")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (story numbers only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	filter := catalog.StoryFilter{}
	filter.DocumentPath, _ = cmd.Flags().GetString("document")
	filter.Author, _ = cmd.Flags().GetString("author")
	filter.User, _ = cmd.Flags().GetString("user")

	stories, err := cliInstance.App.CatalogService.ListStories(ctx, filter)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		if stories == nil {
			stories = []*models.StoryDetail{}
		}
		return formatter.JSONData(stories)
	}

	if formatter.Quiet {
		for _, d := range stories {
			fmt.Printf("%d\n", d.Story.Number)
		}
		return nil
	}

	report.NewPrinter(os.Stdout).StoryList(stories)
	return nil
}
