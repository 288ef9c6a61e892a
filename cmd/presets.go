package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mcpmanager/internal/config"
	"mcpmanager/internal/presets"
	"mcpmanager/internal/settings"
)

var (
	presetsCategory         string
	presetsType             string
	presetsExcludeInstalled bool
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset servers available for installation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := loadCatalog()

		installed := map[string]bool{}
		store := config.NewStore()
		if servers, err := store.ListServers(configPathOverride()); err == nil {
			for _, s := range servers {
				installed[s.Name] = true
			}
		}

		var rows []presets.Preset
		for _, p := range catalog.All() {
			if presetsCategory != "" && p.Category != presetsCategory {
				continue
			}
			if presetsType != "" && p.ServerType != presets.ServerTypeFromCommand(presetsType) {
				continue
			}
			if presetsExcludeInstalled && installed[p.Name] {
				continue
			}
			rows = append(rows, p)
		}

		if len(rows) == 0 {
			fmt.Println("No presets match the given filters")
			return nil
		}

		t := newTable()
		t.AppendHeader(table.Row{"Name", "Category", "Type", "API Keys", "Installed", "Description"})
		for _, p := range rows {
			keys := make([]string, 0, len(p.APIKeys))
			for _, k := range p.APIKeys {
				keys = append(keys, k.Name)
			}
			state := ""
			if installed[p.Name] {
				state = "yes"
			}
			t.AppendRow(table.Row{
				p.Name,
				p.Category,
				p.ServerType.String(),
				strings.Join(keys, ", "),
				state,
				p.Description,
			})
		}
		t.Render()
		return nil
	},
}

// loadCatalog returns the built-in catalog extended by the optional user
// presets.yaml next to the settings file.
func loadCatalog() *presets.Catalog {
	if dir, err := settings.Dir(); err == nil {
		return presets.NewCatalogWithUserFile(filepath.Join(dir, "presets.yaml"))
	}
	return presets.NewCatalog()
}

func init() {
	presetsCmd.Flags().StringVar(&presetsCategory, "category", "", "Only presets in this category")
	presetsCmd.Flags().StringVar(&presetsType, "type", "", "Only presets using this launcher (docker, npx, uvx, uv)")
	presetsCmd.Flags().BoolVar(&presetsExcludeInstalled, "exclude-installed", false, "Skip presets already configured")
	rootCmd.AddCommand(presetsCmd)
}
