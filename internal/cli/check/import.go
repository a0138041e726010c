package check

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/cli/styles"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/services/catalog"
)

// ErrImportRefused is returned when a table with lint errors is imported without --force.
var ErrImportRefused = errors.New("table has lint errors")

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <table.md>",
		Short: "Store a table's stories and narratives in the catalog",
		Long: `Parse a story table and its narratives and replace whatever the catalog
holds for that table. Tables with lint errors are refused unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	addNarrativeFlags(cmd)
	cmd.Flags().Bool("force", false, "Import even when the table has lint errors")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (document ID only)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
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

	tablePath := args[0]
	doc, err := application.Linter.Load(lint.Input{TablePath: tablePath, NarrativePaths: narratives})
	if err != nil {
		return formatter.Fail(err)
	}

	lintReport := application.Linter.Lint(ctx, doc)
	force, _ := cmd.Flags().GetBool("force")
	if lintReport.HasErrors() && !force {
		counts := lintReport.Counts()
		if fmtErr := formatter.ErrorWithSuggestion("IMPORT_REFUSED",
			fmt.Sprintf("%s has %d lint errors", tablePath, counts.Errors),
			"Run storylint lint "+tablePath+" to see them, or pass --force"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitValidation, fmt.Errorf("%w: %s", ErrImportRefused, tablePath))
	}

	content, err := os.ReadFile(tablePath)
	if err != nil {
		return formatter.Fail(err)
	}

	record, err := application.CatalogService.Import(ctx, catalog.ImportRequest{
		Document: doc,
		Checksum: catalog.Checksum(content),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.JSON || formatter.Quiet {
		return formatter.Success(record)
	}

	fmt.Printf("\n%s Imported %s\n\n", styles.SuccessStyle.Render("✓"), styles.PathStyle.Render(record.Path))
	fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Stories:"), record.StoryCount)
	fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Narratives:"), len(doc.Narratives))
	fmt.Printf("  %s %s\n\n", styles.LabelStyle.Render("Checksum:"), record.Checksum[:12])
	return nil
}
