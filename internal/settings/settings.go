package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Settings holds the persisted application settings. JSON field names are the
// on-disk contract shared with the GUI front end.
type Settings struct {
	ClaudeConfigPath string `json:"claudeConfigPath"`
	DarkMode         bool   `json:"darkMode"`
	MCPServerEnabled bool   `json:"mcpServerEnabled"`
	MCPServerPort    uint16 `json:"mcpServerPort"`
	MCPSSEPath       string `json:"mcpSsePath"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		ClaudeConfigPath: "",
		DarkMode:         false,
		MCPServerEnabled: false,
		MCPServerPort:    8000,
		MCPSSEPath:       "/sse",
	}
}

// Indirections for testing.
var (
	osUserHomeDir = os.UserHomeDir
	osGetenv      = os.Getenv
	goos          = runtime.GOOS
)

const appDirName = "mcp-manager"

// Dir returns the platform-standard application settings directory.
func Dir() (string, error) {
	switch goos {
	case "windows":
		appdata := osGetenv("APPDATA")
		if appdata == "" {
			return "", fmt.Errorf("could not determine APPDATA directory")
		}
		return filepath.Join(appdata, appDirName), nil
	case "darwin":
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", appDirName), nil
	default:
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appDirName), nil
	}
}

// Path returns the full path of the settings file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}
