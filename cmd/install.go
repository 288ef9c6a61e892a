package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var installEnv []string

var installCmd = &cobra.Command{
	Use:   "install PRESET",
	Short: "Install a preset server into the configuration",
	Example: `  mcp-manager install dice
  mcp-manager install brave-search --env BRAVE_API_KEY=xxx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		preset := loadCatalog().ByName(args[0])
		if preset == nil {
			return fmt.Errorf("preset %q not found, see 'mcp-manager presets'", args[0])
		}

		env, err := parseEnvPairs(installEnv)
		if err != nil {
			return err
		}

		var missing []string
		for _, key := range preset.APIKeys {
			if key.Required && env[key.Name] == "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", key.Name, key.Description))
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("preset %q requires API keys:\n  %s", preset.Name, strings.Join(missing, "\n  "))
		}

		entry := config.ServerEntry{
			Command: preset.Command,
			Args:    append([]string(nil), preset.Args...),
		}
		if len(preset.Env) > 0 || len(env) > 0 {
			entry.Env = make(map[string]string, len(preset.Env)+len(env))
			for k, v := range preset.Env {
				entry.Env[k] = v
			}
			for k, v := range env {
				entry.Env[k] = v
			}
		}

		store := config.NewStore()
		if _, err := store.Load(configPathOverride()); err != nil {
			return err
		}

		outcome, err := store.AddServer(preset.Name, entry)
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	installCmd.Flags().StringArrayVar(&installEnv, "env", nil, "API key value as KEY=VALUE (repeatable)")
	rootCmd.AddCommand(installCmd)
}
