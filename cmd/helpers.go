package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"mcpmanager/internal/config"
	"mcpmanager/internal/settings"
)

// configPathOverride resolves the --config flag against the saved settings:
// an explicit flag wins, then the path stored in settings, then the platform
// default (handled inside the store).
func configPathOverride() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return settings.NewStore().Load().ClaudeConfigPath
}

// parseEnvPairs converts repeated KEY=VALUE flags into a map.
func parseEnvPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid env pair %q, expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}

// printOutcome reports a mutation result. A negative outcome becomes a
// non-zero exit so scripts can branch on it.
func printOutcome(outcome config.Outcome) error {
	fmt.Println(outcome.Message)
	if !outcome.Success {
		return fmt.Errorf("operation failed")
	}
	return nil
}

// newTable creates a table writer with the house style.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}
