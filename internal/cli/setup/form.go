package setup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/visualeyes/storylint/internal/config"
)

const (
	scopeUser    = "user"
	scopeProject = "project"
	formatYAML   = "yaml"
	formatTOML   = "toml"
)

// errFirstNumber is reported by the form when the first story number is not positive.
var errFirstNumber = errors.New("first story number must be a positive integer")

// initAnswers holds what the interactive init form collects.
type initAnswers struct {
	Scope       string
	Format      string
	Roster      string // comma separated initials
	FirstNumber string
	Confirm     bool
}

func defaultAnswers(cfg *config.Config) *initAnswers {
	return &initAnswers{
		Scope:       scopeProject,
		Format:      formatYAML,
		Roster:      strings.Join(cfg.Authors.Roster, ", "),
		FirstNumber: strconv.Itoa(cfg.Table.FirstNumber),
		Confirm:     true,
	}
}

// newInitForm builds the init form over a. Fields write straight into a.
func newInitForm(a *initAnswers, scheme config.ColorScheme) *huh.Form {
	where := huh.NewGroup(
		huh.NewSelect[string]().
			Key("scope").
			Title("Where should the configuration live?").
			Options(
				huh.NewOption("This project (.storylint.*)", scopeProject),
				huh.NewOption("My user config", scopeUser),
			).
			Value(&a.Scope),

		huh.NewSelect[string]().
			Key("format").
			Title("Project file format").
			Description("User configs are always YAML").
			Options(
				huh.NewOption("YAML", formatYAML),
				huh.NewOption("TOML", formatTOML),
			).
			Value(&a.Format),
	)

	table := huh.NewGroup(
		huh.NewInput().
			Key("roster").
			Title("Author roster (optional)").
			Description("Initials that must own at least one story, comma separated").
			Placeholder("MK, JS, AL").
			Value(&a.Roster),

		huh.NewInput().
			Key("first_number").
			Title("First story number").
			Validate(validateFirstNumber).
			Value(&a.FirstNumber),

		huh.NewConfirm().
			Key("confirm").
			Title("Write this configuration?").
			Affirmative("Yes").
			Negative("No").
			Value(&a.Confirm),
	)

	return huh.NewForm(where, table).WithTheme(formTheme(scheme))
}

func validateFirstNumber(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errFirstNumber
	}
	return nil
}

// apply copies the answers onto cfg and reports where the file goes.
func (a *initAnswers) apply(cfg *config.Config) (project, useTOML bool, err error) {
	if err := validateFirstNumber(a.FirstNumber); err != nil {
		return false, false, err
	}
	cfg.Table.FirstNumber, _ = strconv.Atoi(strings.TrimSpace(a.FirstNumber))

	cfg.Authors.Roster = nil
	seen := make(map[string]bool)
	for _, initials := range strings.Split(a.Roster, ",") {
		initials = strings.TrimSpace(initials)
		if initials == "" || seen[initials] {
			continue
		}
		seen[initials] = true
		cfg.Authors.Roster = append(cfg.Authors.Roster, initials)
	}

	switch a.Scope {
	case scopeProject:
		return true, a.Format == formatTOML, nil
	case scopeUser:
		return false, false, nil
	default:
		return false, false, fmt.Errorf("unknown config scope %q", a.Scope)
	}
}

// formTheme styles the form with the configured colours.
func formTheme(scheme config.ColorScheme) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(scheme.Accent)
		subtle := lipgloss.Color(scheme.Subtle)
		normal := lipgloss.Color(scheme.Normal)
		errorColor := lipgloss.Color(scheme.ErrorFg)
		success := lipgloss.Color(scheme.SuccessFg)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color(scheme.Title)).Bold(true)
		t.Focused.Description = t.Focused.Description.Foreground(subtle)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
		t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
		t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(success)
		t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(normal)
		t.Focused.FocusedButton = t.Focused.FocusedButton.Background(accent).Bold(true)
		t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(normal).Background(subtle)
		t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)
		t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(subtle)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)
		return t
	})
}
