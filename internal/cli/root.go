package cli

import (
	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lteman",
		Short: "Lifecycle manager for the srsLTE eNodeB/UE emulator",
		Long: `lteman installs, builds, configures and operates the srsLTE eNodeB and UE
emulator binaries as systemd services. It reacts to configuration changes,
to an externally supplied core-network address, and to operator actions
(attach-ue, detach-ue, remove-default-gw).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	return rootCmd
}
