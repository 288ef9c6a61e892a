package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpmanager/internal/settings"
)

var (
	setClaudeConfigPath string
	setDarkMode         string
	setServerEnabled    string
	setServerPort       uint16
	setSSEPath          string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the application settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := settings.NewStore().Load()

		configPath := current.ClaudeConfigPath
		if configPath == "" {
			configPath = "(platform default)"
		}
		fmt.Printf("Claude config path: %s\n", configPath)
		fmt.Printf("Dark mode:          %t\n", current.DarkMode)
		fmt.Printf("MCP server enabled: %t\n", current.MCPServerEnabled)
		fmt.Printf("MCP server port:    %d\n", current.MCPServerPort)
		fmt.Printf("SSE path:           %s\n", current.MCPSSEPath)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Example: `  mcp-manager settings set --mcp-server-enabled true --mcp-server-port 8001
  mcp-manager settings set --claude-config-path /path/to/claude_desktop_config.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := settings.NewStore()
		current := store.Load()

		if cmd.Flags().Changed("claude-config-path") {
			current.ClaudeConfigPath = setClaudeConfigPath
		}
		if cmd.Flags().Changed("dark-mode") {
			v, err := parseBoolFlag("dark-mode", setDarkMode)
			if err != nil {
				return err
			}
			current.DarkMode = v
		}
		if cmd.Flags().Changed("mcp-server-enabled") {
			v, err := parseBoolFlag("mcp-server-enabled", setServerEnabled)
			if err != nil {
				return err
			}
			current.MCPServerEnabled = v
		}
		if cmd.Flags().Changed("mcp-server-port") {
			current.MCPServerPort = setServerPort
		}
		if cmd.Flags().Changed("sse-path") {
			current.MCPSSEPath = setSSEPath
		}

		if err := store.Save(current); err != nil {
			return err
		}
		fmt.Println("Settings saved")
		return nil
	},
}

func parseBoolFlag(name, value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("--%s must be true or false, got %q", name, value)
	}
}

func init() {
	settingsSetCmd.Flags().StringVar(&setClaudeConfigPath, "claude-config-path", "", "Path to the Claude configuration file (empty for platform default)")
	settingsSetCmd.Flags().StringVar(&setDarkMode, "dark-mode", "", "Enable dark mode in the GUI (true/false)")
	settingsSetCmd.Flags().StringVar(&setServerEnabled, "mcp-server-enabled", "", "Start the embedded MCP server automatically (true/false)")
	settingsSetCmd.Flags().Uint16Var(&setServerPort, "mcp-server-port", 8000, "Port for the embedded MCP server")
	settingsSetCmd.Flags().StringVar(&setSSEPath, "sse-path", "/sse", "HTTP path of the SSE endpoint")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
