package commands

import (
	"github.com/spf13/cobra"

	"lteman/internal/server"
)

// ServeCommand creates the control API server command
func ServeCommand(srv *server.Server) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the control API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return srv.Start(cmd.Context())
		},
	}
}
