package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"lteman/internal/errors"
	"lteman/internal/netif"
	"lteman/internal/operations"
)

// LifecycleCommands creates the lifecycle event commands
func LifecycleCommands(ops *operations.Manager) []*cobra.Command {
	commands := []*cobra.Command{}

	// lteman install
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install packages, fetch and build the emulator, write unit files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Dispatch(cmd.Context(), operations.Trigger{Event: operations.EventInstall})
		},
	}
	commands = append(commands, installCmd)

	// lteman start
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the eNodeB service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Dispatch(cmd.Context(), operations.Trigger{Event: operations.EventStart})
		},
	}
	commands = append(commands, startCmd)

	// lteman stop
	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the eNodeB service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Dispatch(cmd.Context(), operations.Trigger{Event: operations.EventStop})
		},
	}
	commands = append(commands, stopCmd)

	// lteman reconcile
	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Re-resolve addresses and converge unit definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Dispatch(cmd.Context(), operations.Trigger{Event: operations.EventConfigChanged})
		},
	}
	commands = append(commands, reconcileCmd)

	// lteman core-address <ipv4>
	coreAddrCmd := &cobra.Command{
		Use:   "core-address <ipv4>",
		Short: "Record the core-network (MME) address and converge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !netif.IsIPv4(args[0]) {
				return errors.InvalidAddress(args[0])
			}
			return ops.Dispatch(cmd.Context(), operations.Trigger{
				Event:   operations.EventCoreAddressChanged,
				Address: args[0],
			})
		},
	}
	commands = append(commands, coreAddrCmd)

	// lteman status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the composed service status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ops.Status(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	commands = append(commands, statusCmd)

	// lteman remove
	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Stop and delete the managed services and clear state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops.Dispatch(cmd.Context(), operations.Trigger{Event: operations.EventRemove})
		},
	}
	commands = append(commands, removeCmd)

	return commands
}
