package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"mcpmanager/pkg/logging"
)

var (
	flagConfigPath string
	flagDebug      bool
)

// rootCmd is the base command of the mcp-manager CLI.
var rootCmd = &cobra.Command{
	Use:   "mcp-manager",
	Short: "Manage MCP servers in the Claude Desktop configuration",
	Long: `mcp-manager edits the Claude Desktop configuration file that defines
which MCP servers are available to the assistant. It can list, add, update,
and remove servers, install presets from a built-in catalog, and run an
embedded MCP server so automation clients can do the same remotely.

The configuration path is detected per platform; use --config to point at a
different file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if flagDebug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion injects the build version into the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the injected build version.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-manager version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to the Claude configuration file (default: platform-specific)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}
