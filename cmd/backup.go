package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of the configuration file",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a timestamped manual backup of the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore()
		outcome, err := store.CreateManualBackup(configPathOverride())
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

var backupInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show details of the automatic backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore()
		info, err := store.BackupDetails(configPathOverride())
		if err != nil {
			return err
		}
		if info == nil {
			fmt.Println("No automatic backup exists yet")
			return nil
		}

		validity := "valid"
		if !info.IsValid {
			validity = "INVALID"
		}
		fmt.Printf("Path:    %s\n", info.Path)
		fmt.Printf("Created: %s\n", info.Created)
		fmt.Printf("Size:    %d bytes\n", info.Size)
		fmt.Printf("Content: %s\n", validity)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupInfoCmd)
	rootCmd.AddCommand(backupCmd)
}
