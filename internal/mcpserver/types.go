package mcpserver

import (
	"sort"

	"mcpmanager/internal/config"
	"mcpmanager/internal/presets"
)

// sanitizedServer is the wire shape of a configured server as exposed over
// the tool server. Environment variable VALUES never cross this boundary;
// only the key names do.
type sanitizedServer struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`
	Args    []string `json:"args"`
	EnvKeys []string `json:"env_keys"`
}

func sanitizeServer(info config.ServerInfo) sanitizedServer {
	keys := make([]string, 0, len(info.Env))
	for k := range info.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := info.Args
	if args == nil {
		args = []string{}
	}

	return sanitizedServer{
		Name:    info.Name,
		Command: info.Command,
		Args:    args,
		EnvKeys: keys,
	}
}

// presetView is the wire shape of a catalog preset. The preset's env template
// is reduced to key names, same as configured servers.
type presetView struct {
	Name           string                      `json:"name"`
	Description    string                      `json:"description"`
	Category       string                      `json:"category"`
	ServerType     string                      `json:"server_type"`
	Command        string                      `json:"command"`
	Args           []string                    `json:"args"`
	EnvKeys        []string                    `json:"env_keys"`
	APIKeys        []presets.APIKeyRequirement `json:"api_keys"`
	RequiresAPIKey bool                        `json:"requires_api_key"`
	Installed      bool                        `json:"installed"`
}

func viewPreset(p presets.Preset, installed bool) presetView {
	args := p.Args
	if args == nil {
		args = []string{}
	}
	apiKeys := p.APIKeys
	if apiKeys == nil {
		apiKeys = []presets.APIKeyRequirement{}
	}
	envKeys := make([]string, 0, len(p.Env))
	for k := range p.Env {
		envKeys = append(envKeys, k)
	}
	sort.Strings(envKeys)
	return presetView{
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		ServerType:     p.ServerType.String(),
		Command:        p.Command,
		Args:           args,
		EnvKeys:        envKeys,
		APIKeys:        apiKeys,
		RequiresAPIKey: p.RequiresAPIKey,
		Installed:      installed,
	}
}
