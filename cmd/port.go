package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mcpmanager/internal/lifecycle"
	"mcpmanager/internal/settings"
)

var portCmd = &cobra.Command{
	Use:   "port",
	Short: "Inspect ports for the embedded MCP server",
}

var portValidateCmd = &cobra.Command{
	Use:   "validate PORT",
	Short: "Check whether the MCP server could bind the given port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", args[0], err)
		}

		manager := lifecycle.NewManager(settings.NewStore(), nil)
		return printOutcome(manager.ValidatePort(uint16(value)))
	},
}

func init() {
	portCmd.AddCommand(portValidateCmd)
	rootCmd.AddCommand(portCmd)
}
