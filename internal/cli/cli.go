package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/database"
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App // Application container with services
	owned bool
}

// NewCLI loads the configuration, opens the catalog and builds the services.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application, err := app.New(db, app.WithConfig(cfg), app.WithLogger(slog.Default()))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &CLI{App: application, owned: true}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
