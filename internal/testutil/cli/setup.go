package cli

import (
	"database/sql"
	"testing"

	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	return SetupCLITestWithConfig(t, config.Default())
}

// SetupCLITestWithConfig is SetupCLITest with a custom configuration.
func SetupCLITestWithConfig(t *testing.T, cfg *config.Config) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance, err := app.New(db, app.WithConfig(cfg))
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}
	t.Cleanup(func() { _ = appInstance.Close() })

	return db, appInstance
}
