package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured MCP servers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore()
		servers, err := store.ListServers(configPathOverride())
		if err != nil {
			return err
		}

		if len(servers) == 0 {
			fmt.Println("No MCP servers configured")
			return nil
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Command", "Args", "Env"})
		for _, s := range servers {
			envKeys := make([]string, 0, len(s.Env))
			for k := range s.Env {
				envKeys = append(envKeys, k)
			}
			t.AppendRow(table.Row{
				s.Name,
				s.Command,
				strings.Join(s.Args, " "),
				strings.Join(envKeys, ", "),
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
