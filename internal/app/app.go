package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/visualeyes/storylint/internal/config"
	"github.com/visualeyes/storylint/internal/database"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/services/catalog"
	"github.com/visualeyes/storylint/internal/services/runs"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db *sql.DB

	Config *config.Config
	Linter *lint.Linter

	// Service layer (business logic)
	CatalogService catalog.Service
	RunService     runs.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *sql.DB, opts ...Option) (*App, error) {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	lintOpts, err := cfg.config.LintOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	linter, err := lint.New(lintOpts)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	repo := database.NewRepository(db)
	cfg.logger.Debug("application initialized",
		"database", cfg.config.DatabasePath,
		"config_sources", cfg.config.Sources)

	return &App{
		db:             db,
		Config:         cfg.config,
		Linter:         linter,
		CatalogService: catalog.NewService(repo),
		RunService:     runs.NewService(repo),
	}, nil
}

// Close closes the database connection.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
