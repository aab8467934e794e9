// Package app wires the application components together.
package app

import (
	"context"
	"fmt"

	"lteman/internal/cli"
	"lteman/internal/config"
	"lteman/internal/install"
	"lteman/internal/logger"
	"lteman/internal/netif"
	"lteman/internal/operations"
	"lteman/internal/reconciler"
	"lteman/internal/server"
	"lteman/internal/state"
	"lteman/internal/systemd"
)

// App represents the main application
type App struct {
	Config *config.Config
	Store  *state.Store
	Ops    *operations.Manager
	Server *server.Server
	CLI    *cli.Manager
}

// New creates a new application instance
func New() *App {
	return &App{}
}

// RunWithContext starts the application with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.Config = cfg
	logger.SetLevel(cfg.Log.Level)

	store, err := state.New(state.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	a.Store = store
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate state store: %w", err)
	}

	rec := reconciler.New(systemd.NewManager())
	resolver := netif.NewResolver(netif.NewSource())
	installer := install.New(cfg)

	a.Ops = operations.NewManager(cfg, store, rec, installer, resolver)
	a.Server = server.New(cfg, a.Ops)
	a.CLI = cli.New(cfg, a.Ops, a.Server)

	if len(args) == 0 {
		return a.CLI.ExecuteWithContext(ctx, []string{"--help"})
	}
	return a.CLI.ExecuteWithContext(ctx, args)
}
