package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lteman/internal/operations"
)

// ActionCommands creates the operator action commands
func ActionCommands(ops *operations.Manager) []*cobra.Command {
	commands := []*cobra.Command{}

	// lteman attach-ue --usim-imsi ... --usim-k ... --usim-opc ...
	var imsi, k, opc string
	attachCmd := &cobra.Command{
		Use:   "attach-ue",
		Short: "Attach the UE emulator with a subscriber identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ops.AttachUE(cmd.Context(), imsi, k, opc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (ip: %s)\n", result.Message, result.IP)
			return nil
		},
	}
	attachCmd.Flags().StringVar(&imsi, "usim-imsi", "", "subscriber IMSI")
	attachCmd.Flags().StringVar(&k, "usim-k", "", "subscriber key")
	attachCmd.Flags().StringVar(&opc, "usim-opc", "", "subscriber operator code")
	commands = append(commands, attachCmd)

	// lteman detach-ue
	detachCmd := &cobra.Command{
		Use:   "detach-ue",
		Short: "Detach the UE emulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ops.DetachUE(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	commands = append(commands, detachCmd)

	// lteman remove-default-gw
	removeGwCmd := &cobra.Command{
		Use:   "remove-default-gw",
		Short: "Remove the host default route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ops.RemoveDefaultGW(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	commands = append(commands, removeGwCmd)

	return commands
}
