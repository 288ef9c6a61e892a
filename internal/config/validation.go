package config

import (
	"fmt"
	"strings"
)

// ValidateStructure checks the domain invariants of a parsed configuration:
// non-empty trimmed names, non-empty commands, and no unquoted multi-word
// commands (arguments belong in args, not the command string).
func ValidateStructure(cfg *Config) error {
	for name, entry := range cfg.MCPServers {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Message: "server name cannot be empty"}
		}
		if strings.TrimSpace(entry.Command) == "" {
			return &ValidationError{Message: fmt.Sprintf("server %q has an empty command", name)}
		}
		if strings.Contains(entry.Command, " ") && !strings.HasPrefix(entry.Command, "\"") {
			return &ValidationError{Message: fmt.Sprintf(
				"server %q command contains spaces but is not quoted; move arguments to the args array", name)}
		}
	}
	return nil
}
