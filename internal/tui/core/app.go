// Package core wires the browser model to the application services.
package core

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/tui"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
type App struct {
	model *tui.Model
}

// New creates an App browsing application's catalog and runs.
func New(ctx context.Context, application *app.App) *App {
	model := tui.New(ctx, application.CatalogService, application.RunService, application.Config)
	return &App{model: &model}
}

// Init initializes the Bubble Tea application.
func (a *App) Init() tea.Cmd {
	return a.model.Init()
}

// Update delegates to Model.Update and stores the result.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedModel, cmd := a.model.Update(msg)
	if m, ok := updatedModel.(tui.Model); ok {
		*a.model = m
	}
	return a, cmd
}

// View renders the current state of the application.
func (a *App) View() tea.View {
	return a.model.View()
}

// GetModel returns the underlying Model.
// This is primarily useful for testing purposes.
func (a *App) GetModel() *tui.Model {
	return a.model
}
