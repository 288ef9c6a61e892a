package cmd

import (
	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var (
	editCommand string
	editArgs    []string
	editEnv     []string
)

var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Update an MCP server, creating it when absent",
	Long: `Replaces the configuration of the named server with the given command,
arguments, and environment. The previous entry is not merged; what you pass
is what gets written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := parseEnvPairs(editEnv)
		if err != nil {
			return err
		}

		store := config.NewStore()
		if _, err := store.Load(configPathOverride()); err != nil {
			return err
		}

		outcome, err := store.UpdateServer(args[0], config.ServerEntry{
			Command: editCommand,
			Args:    editArgs,
			Env:     env,
		})
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	editCmd.Flags().StringVar(&editCommand, "command", "", "Executable that launches the server")
	editCmd.Flags().StringArrayVar(&editArgs, "arg", nil, "Command line argument (repeatable)")
	editCmd.Flags().StringArrayVar(&editEnv, "env", nil, "Environment variable as KEY=VALUE (repeatable)")
	_ = editCmd.MarkFlagRequired("command")
	rootCmd.AddCommand(editCmd)
}
