package cmd

import (
	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var (
	addCommand string
	addArgs    []string
	addEnv     []string
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a new MCP server to the configuration",
	Example: `  mcp-manager add dice --command uvx --arg mcp-dice
  mcp-manager add search --command npx --arg -y --arg @modelcontextprotocol/server-brave-search --env BRAVE_API_KEY=xxx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := parseEnvPairs(addEnv)
		if err != nil {
			return err
		}

		store := config.NewStore()
		if _, err := store.Load(configPathOverride()); err != nil {
			return err
		}

		outcome, err := store.AddServer(args[0], config.ServerEntry{
			Command: addCommand,
			Args:    addArgs,
			Env:     env,
		})
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	addCmd.Flags().StringVar(&addCommand, "command", "", "Executable that launches the server")
	addCmd.Flags().StringArrayVar(&addArgs, "arg", nil, "Command line argument (repeatable)")
	addCmd.Flags().StringArrayVar(&addEnv, "env", nil, "Environment variable as KEY=VALUE (repeatable)")
	_ = addCmd.MarkFlagRequired("command")
	rootCmd.AddCommand(addCmd)
}
