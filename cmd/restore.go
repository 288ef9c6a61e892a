package cmd

import (
	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the configuration from the automatic backup",
	Long: `Replaces the configuration file with the last automatic backup. The backup
is checked for valid JSON first, and the current file is kept next to it
with a .broken suffix so nothing is lost.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore()
		outcome, err := store.RestoreFromBackup(configPathOverride())
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
