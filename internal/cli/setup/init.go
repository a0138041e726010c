// Package setup writes starter configuration files.
package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/cli/styles"
	"github.com/visualeyes/storylint/internal/config"
)

// ErrConfigExists is returned when init would overwrite a file without --force.
var ErrConfigExists = errors.New("config file already exists")

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var projectFlag bool
	var tomlFlag bool
	var forceFlag bool
	var checkFlag bool
	var interactiveFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration",
		Long: `Write the default configuration so it can be edited.

Examples:
  # User config (~/.config/storylint/config.yaml)
  storylint init

  # Project overlay in the current directory
  storylint init --project
  storylint init --project --toml

  # Answer a few questions instead of writing the defaults
  storylint init --interactive

  # Show which files the current configuration was loaded from
  storylint init --check
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.Formatter(cmd.Flags())
			if checkFlag {
				return checkConfig(formatter)
			}
			if interactiveFlag {
				return interactiveInit(formatter, forceFlag)
			}
			return writeConfig(formatter, config.Default(), projectFlag, tomlFlag, forceFlag)
		},
	}

	cmd.Flags().BoolVar(&projectFlag, "project", false, "Write a project overlay in the current directory")
	cmd.Flags().BoolVar(&tomlFlag, "toml", false, "Write the project overlay as TOML")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&checkFlag, "check", false, "List the files the configuration is loaded from")
	cmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "Choose location, roster and numbering in a form")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (path only)")

	return cmd
}

// interactiveInit runs the init form on the terminal and writes what it collects.
// The form decides between user and project config, so --project and --toml are ignored.
func interactiveInit(formatter *cli.OutputFormatter, force bool) error {
	if formatter.JSON || formatter.Quiet {
		if fmtErr := formatter.Error("INVALID_FLAGS", "--interactive cannot be combined with --json or --quiet"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitUsage, errors.New("--interactive needs a terminal"))
	}

	scheme := config.DefaultColorScheme()
	if loaded, err := config.Load(); err == nil {
		scheme = loaded.ColorScheme
	}

	cfg := config.Default()
	answers := defaultAnswers(cfg)
	if err := newInitForm(answers, scheme).Run(); err != nil {
		return formatter.Fail(err)
	}
	if !answers.Confirm {
		fmt.Println("Nothing written")
		return nil
	}

	project, useTOML, err := answers.apply(cfg)
	if err != nil {
		return formatter.Fail(err)
	}
	return writeConfig(formatter, cfg, project, useTOML, force)
}

func writeConfig(formatter *cli.OutputFormatter, cfg *config.Config, project, useTOML, force bool) error {
	if useTOML && !project {
		if fmtErr := formatter.Error("INVALID_FLAGS", "--toml only applies to --project"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitUsage, errors.New("--toml requires --project"))
	}

	var target string
	if project {
		wd, err := os.Getwd()
		if err != nil {
			return formatter.Fail(err)
		}
		target = config.ProjectPath(wd, useTOML)
	} else {
		path, err := config.Path()
		if err != nil {
			return formatter.Fail(err)
		}
		target = path
	}

	if _, err := os.Stat(target); err == nil && !force {
		if fmtErr := formatter.ErrorWithSuggestion("CONFIG_EXISTS",
			fmt.Sprintf("%s already exists", target), "Pass --force to overwrite it"); fmtErr != nil {
			return fmtErr
		}
		return cli.Exit(cli.ExitUsage, fmt.Errorf("%w: %s", ErrConfigExists, target))
	}

	var written string
	var err error
	if project {
		written, err = cfg.WriteProject(filepath.Dir(target), useTOML)
	} else {
		written, err = cfg.Save()
	}
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.JSON:
		return formatter.JSONData(map[string]string{"path": written})
	case formatter.Quiet:
		fmt.Println(written)
	default:
		fmt.Printf("%s Wrote %s\n", styles.SuccessStyle.Render("✓"), styles.PathStyle.Render(written))
	}
	return nil
}

func checkConfig(formatter *cli.OutputFormatter) error {
	cfg, err := config.Load()
	if err != nil {
		return formatter.Fail(err)
	}

	sources := cfg.Sources
	if sources == nil {
		sources = []string{}
	}

	switch {
	case formatter.JSON:
		return formatter.JSONData(map[string]interface{}{
			"sources":  sources,
			"database": cfg.DatabasePath,
		})
	case formatter.Quiet:
		for _, s := range sources {
			fmt.Println(s)
		}
	default:
		if len(sources) == 0 {
			fmt.Println("✗ No config files found, using built-in defaults")
			fmt.Println("  Run: storylint init")
		}
		for _, s := range sources {
			fmt.Println("✓", s)
		}
		fmt.Printf("%s %s\n", styles.LabelStyle.Render("Catalog:"), cfg.DatabasePath)
	}
	return nil
}
