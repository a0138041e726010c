package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/testutil"
)

// ExecuteCLICommand runs cmd against testApp's catalog and returns its stdout.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext is ExecuteCLICommand under ctx, so long-running
// commands such as watch can be stopped by cancelling it.
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	if testApp == nil {
		t.Fatal("testApp is nil; call SetupCLITest first")
	}

	testutil.SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(context.WithValue(ctx, testutil.TestAppKey, testApp))
	})
	return output, executeErr
}
