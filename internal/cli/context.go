package cli

import (
	"context"

	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/testutil"
)

// GetCLIFromContext returns the CLI for a command. An app injected into ctx
// under testutil.TestAppKey is used as is and left open on Close.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if injected, ok := ctx.Value(testutil.TestAppKey).(*app.App); ok && injected != nil {
			return &CLI{App: injected}, nil
		}
	} else {
		ctx = context.Background()
	}
	return NewCLI(ctx)
}

// Formatter builds the output formatter from the --json and --quiet flags.
func Formatter(flags interface {
	GetBool(name string) (bool, error)
}) *OutputFormatter {
	jsonOutput, _ := flags.GetBool("json")
	quietMode, _ := flags.GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
