package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show the full configuration of one MCP server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore()
		info, err := store.GetServerDetails(args[0], configPathOverride())
		if err != nil {
			return err
		}

		fmt.Printf("Name:    %s\n", info.Name)
		fmt.Printf("Command: %s\n", info.Command)
		fmt.Printf("Args:    %s\n", strings.Join(info.Args, " "))

		if len(info.Env) > 0 {
			keys := make([]string, 0, len(info.Env))
			for k := range info.Env {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Println("Env:")
			for _, k := range keys {
				fmt.Printf("  %s=%s\n", k, info.Env[k])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
