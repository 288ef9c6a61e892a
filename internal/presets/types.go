package presets

import "strings"

// ServerType classifies a preset by the launcher command it uses. The type is
// open-ended: values outside the known constants are carried verbatim (the
// "other" arm), so matching code must always handle the default case.
type ServerType string

const (
	ServerTypeDocker ServerType = "docker"
	ServerTypeNpx    ServerType = "npx"
	ServerTypeUvx    ServerType = "uvx"
	ServerTypeUv     ServerType = "uv"
)

// ServerTypeFromCommand derives the type from a command name; unrecognized
// commands map to the other arm carrying the command itself.
func ServerTypeFromCommand(command string) ServerType {
	switch strings.ToLower(command) {
	case "docker":
		return ServerTypeDocker
	case "npx":
		return ServerTypeNpx
	case "uvx":
		return ServerTypeUvx
	case "uv":
		return ServerTypeUv
	default:
		return ServerType(command)
	}
}

// IsKnown reports whether the type is one of the named launcher arms.
func (t ServerType) IsKnown() bool {
	switch t {
	case ServerTypeDocker, ServerTypeNpx, ServerTypeUvx, ServerTypeUv:
		return true
	default:
		return false
	}
}

func (t ServerType) String() string {
	return string(t)
}

// APIKeyRequirement documents one environment variable a preset needs before
// it can run.
type APIKeyRequirement struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// Preset is a ready-to-install server template from the static catalog.
type Preset struct {
	Name           string              `json:"name" yaml:"name"`
	Description    string              `json:"description" yaml:"description"`
	Category       string              `json:"category" yaml:"category"`
	ServerType     ServerType          `json:"serverType" yaml:"serverType"`
	Command        string              `json:"command" yaml:"command"`
	Args           []string            `json:"args" yaml:"args"`
	Env            map[string]string   `json:"env,omitempty" yaml:"env,omitempty"`
	APIKeys        []APIKeyRequirement `json:"apiKeys" yaml:"apiKeys"`
	RequiresAPIKey bool                `json:"requiresApiKey" yaml:"requiresApiKey"`
}

// ValidateCommandType reports whether the preset's declared type matches its
// command. Presets on the other arm are always consistent.
func (p Preset) ValidateCommandType() bool {
	if !p.ServerType.IsKnown() {
		return true
	}
	return ServerTypeFromCommand(p.Command) == p.ServerType
}
