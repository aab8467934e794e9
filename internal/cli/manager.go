// Package cli exposes every lifecycle event and action as a subcommand, so
// the host orchestration layer can drive lteman from hooks.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"lteman/internal/cli/commands"
	"lteman/internal/config"
	"lteman/internal/operations"
	"lteman/internal/server"
)

// Manager handles CLI operations
type Manager struct {
	cfg     *config.Config
	ops     *operations.Manager
	srv     *server.Server
	rootCmd *cobra.Command
}

// New creates a new CLI manager
func New(cfg *config.Config, ops *operations.Manager, srv *server.Server) *Manager {
	m := &Manager{
		cfg:     cfg,
		ops:     ops,
		srv:     srv,
		rootCmd: createRootCommand(),
	}
	m.setupCommands()
	return m
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	for _, cmd := range commands.LifecycleCommands(m.ops) {
		m.rootCmd.AddCommand(cmd)
	}
	for _, cmd := range commands.ActionCommands(m.ops) {
		m.rootCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(commands.ServeCommand(m.srv))
	m.rootCmd.AddCommand(commands.ConfigCommands(m.cfg))
}
