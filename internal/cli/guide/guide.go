// Package guide prints the built-in usage guide.
package guide

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/report"
)

//go:embed guide.md
var guideContent string

// GuideCmd returns the guide command
func GuideCmd() *cobra.Command {
	var renderFlag bool
	var width int

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Print the storylint guide",
		Long: `Print the table format, narrative format, commands and exit codes as
markdown. Plain markdown is the default so the output can be piped to agents or
files; --render formats it for the terminal.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if renderFlag {
				fmt.Print(report.RenderMarkdown(guideContent, width))
				return
			}
			fmt.Print(guideContent)
		},
	}

	cmd.Flags().BoolVar(&renderFlag, "render", false, "Render the markdown for the terminal")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width when rendering")

	return cmd
}
