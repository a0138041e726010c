package story

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/report"
	"github.com/visualeyes/storylint/internal/services/catalog"
)

// ShowCmd returns the story show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show a story with its narratives",
		Long: `Show one story and the narratives that elaborate it.
--document may be omitted when only one table is catalogued.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	cmd.Flags().StringP("document", "d", "", "Table the story belongs to")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (story number only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd.Flags())

	number, err := strconv.Atoi(args[0])
	if err != nil || number <= 0 {
		return formatter.Fail(fmt.Errorf("%w: %q", catalog.ErrInvalidStoryNumber, args[0]))
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

	document, _ := cmd.Flags().GetString("document")
	detail, err := cliInstance.App.CatalogService.GetStory(ctx, document, number)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON {
		return formatter.JSONData(detail)
	}
	if formatter.Quiet {
		fmt.Printf("%d\n", detail.Story.Number)
		return nil
	}

	fmt.Println(report.NewPrinter(os.Stdout).StoryCard(detail))
	return nil
}
