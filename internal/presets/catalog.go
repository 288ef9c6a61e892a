package presets

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"mcpmanager/pkg/logging"
)

const subsystem = "Presets"

// Catalog is the read-only set of installable preset servers: the built-in
// database, optionally extended by a user presets.yaml file. User entries
// with a name matching a built-in entry override it.
type Catalog struct {
	presets []Preset
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{presets: builtinPresets()}
}

// NewCatalogWithUserFile returns the built-in catalog merged with the user
// presets file at the given path. A missing or unparsable file is logged and
// ignored; the catalog never fails to construct.
func NewCatalogWithUserFile(path string) *Catalog {
	merged := builtinPresets()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn(subsystem, "Failed to read user presets file %s: %v", path, err)
		}
		return &Catalog{presets: merged}
	}

	var userFile struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(content, &userFile); err != nil {
		logging.Warn(subsystem, "Failed to parse user presets file %s: %v", path, err)
		return &Catalog{presets: merged}
	}

	byName := make(map[string]int, len(merged))
	for i, p := range merged {
		byName[p.Name] = i
	}
	for _, p := range userFile.Presets {
		if p.ServerType == "" {
			p.ServerType = ServerTypeFromCommand(p.Command)
		}
		if i, ok := byName[p.Name]; ok {
			merged[i] = p
		} else {
			byName[p.Name] = len(merged)
			merged = append(merged, p)
		}
	}

	logging.Info(subsystem, "Loaded %d user presets from %s", len(userFile.Presets), path)
	return &Catalog{presets: merged}
}

// All returns every preset in the catalog.
func (c *Catalog) All() []Preset {
	out := make([]Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// ByName returns the preset with the given name, or nil.
func (c *Catalog) ByName(name string) *Preset {
	for _, p := range c.presets {
		if p.Name == name {
			preset := p
			return &preset
		}
	}
	return nil
}

// ByCategory returns all presets in the given category.
func (c *Catalog) ByCategory(category string) []Preset {
	var out []Preset
	for _, p := range c.presets {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the sorted, deduplicated category names.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range c.presets {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ByType returns all presets whose server type matches. The argument is
// normalized through ServerTypeFromCommand so "Docker" matches "docker" and
// unknown strings match the other arm verbatim.
func (c *Catalog) ByType(serverType string) []Preset {
	target := ServerTypeFromCommand(serverType)
	var out []Preset
	for _, p := range c.presets {
		if p.ServerType == target {
			out = append(out, p)
		}
	}
	return out
}

// Types returns the sorted, deduplicated server type names in the catalog.
func (c *Catalog) Types() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range c.presets {
		t := p.ServerType.String()
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func builtinPresets() []Preset {
	return []Preset{
		{
			Name:        "dice",
			Description: "Random dice rolling utility for games and decision making",
			Category:    "Utilities",
			ServerType:  ServerTypeUvx,
			Command:     "uvx",
			Args:        []string{"mcp-dice"},
		},
		{
			Name:        "time",
			Description: "Time and timezone utilities for scheduling and time management",
			Category:    "Utilities",
			ServerType:  ServerTypeUvx,
			Command:     "uvx",
			Args:        []string{"mcp-server-time", "--local-timezone=UTC"},
		},
		{
			Name:        "sequential-thinking",
			Description: "Enhanced reasoning capabilities for complex problem solving",
			Category:    "AI Tools",
			ServerType:  ServerTypeDocker,
			Command:     "docker",
			Args:        []string{"run", "--rm", "-i", "mcp/sequentialthinking"},
		},
		{
			Name:        "browsermcp",
			Description: "Web browsing capabilities for accessing and interacting with websites",
			Category:    "Web Tools",
			ServerType:  ServerTypeNpx,
			Command:     "npx",
			Args:        []string{"@browsermcp/mcp@latest"},
		},
		{
			Name:        "brave-search",
			Description: "Web search functionality using Brave Search API",
			Category:    "Search",
			ServerType:  ServerTypeNpx,
			Command:     "npx",
			Args:        []string{"-y", "@modelcontextprotocol/server-brave-search"},
			APIKeys: []APIKeyRequirement{
				{
					Name:        "BRAVE_API_KEY",
					Description: "Get your API key from https://brave.com/search/api/",
					Required:    true,
				},
			},
			RequiresAPIKey: true,
		},
		{
			Name:        "openweather",
			Description: "Weather information and forecasts using OpenWeatherMap API",
			Category:    "Weather",
			ServerType:  ServerTypeDocker,
			Command:     "docker",
			Args:        []string{"run", "-i", "--rm", "-e", "OWM_API_KEY", "mcp/openweather"},
			APIKeys: []APIKeyRequirement{
				{
					Name:        "OWM_API_KEY",
					Description: "Get your API key from https://openweathermap.org/api",
					Required:    true,
				},
			},
			RequiresAPIKey: true,
		},
		{
			Name:        "context7",
			Description: "Documentation search and code context analysis",
			Category:    "Development",
			ServerType:  ServerTypeNpx,
			Command:     "npx",
			Args:        []string{"-y", "@upstash/context7-mcp@latest"},
		},
		{
			Name:        "docker",
			Description: "Docker container management and operations",
			Category:    "Development",
			ServerType:  ServerTypeUvx,
			Command:     "uvx",
			Args:        []string{"--from", "git+https://github.com/ckreiling/mcp-server-docker", "mcp-server-docker"},
		},
		{
			Name:        "desktop-commander",
			Description: "Desktop automation and system control capabilities",
			Category:    "System",
			ServerType:  ServerTypeDocker,
			Command:     "docker",
			Args:        []string{"run", "-i", "--rm", "mcp/desktop-commander"},
		},
		{
			Name:        "mcp-manager",
			Description: "Control MCP Manager itself through its embedded tool server",
			Category:    "Development",
			ServerType:  ServerTypeNpx,
			Command:     "npx",
			Args:        []string{"-y", "supergateway", "--sse", "http://localhost:8000/sse"},
		},
	}
}
