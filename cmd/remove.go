package cmd

import (
	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var removeCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove an MCP server from the configuration",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore()
		if _, err := store.Load(configPathOverride()); err != nil {
			return err
		}

		outcome, err := store.DeleteServer(args[0])
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
