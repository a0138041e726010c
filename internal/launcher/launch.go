// Package launcher runs the story browser.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/tui/core"
	"github.com/visualeyes/storylint/internal/tui/theme"
)

// Option configures the program started by Launch.
type Option func(*options)

type options struct {
	programOpts []tea.ProgramOption
}

// WithIO runs the program on the given input and output instead of the terminal.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.programOpts = append(o.programOpts, tea.WithInput(in), tea.WithOutput(out))
	}
}

// Launch starts the browser and blocks until the user quits or ctx is cancelled.
// Cancellation is not an error.
func Launch(ctx context.Context, application *app.App, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	theme.Init(application.Config.ColorScheme)

	tuiApp := core.New(ctx, application)
	p := tea.NewProgram(tuiApp, append([]tea.ProgramOption{tea.WithContext(ctx)}, o.programOpts...)...)

	slog.Info("starting story browser")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			slog.Info("story browser cancelled")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	slog.Info("story browser closed")
	return nil
}
