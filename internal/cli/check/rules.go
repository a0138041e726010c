package check

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/report"
)

// RulesCmd returns the rules command
func RulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the lint rules and their effective severities",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (rule IDs only)")

	return cmd
}

func runRules(cmd *cobra.Command, args []string) error {
	formatter := cli.Formatter(cmd.Flags())

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			log.Printf("Error closing CLI: %v", err)
		}
	}()
	linter := cliInstance.App.Linter

	rules := lint.Rules()
	infos := make([]report.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, report.RuleInfo{
			ID:          r.ID(),
			Severity:    linter.Severity(r),
			Default:     r.DefaultSeverity(),
			Description: r.Description(),
		})
	}

	if formatter.JSON {
		return formatter.JSONData(infos)
	}
	if formatter.Quiet {
		for _, info := range infos {
			fmt.Println(info.ID)
		}
		return nil
	}

	report.NewPrinter(os.Stdout).Rules(infos)
	return nil
}
