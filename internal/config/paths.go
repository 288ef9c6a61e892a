package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Indirections for testing.
var (
	osUserHomeDir = os.UserHomeDir
	osGetenv      = os.Getenv
	goos          = runtime.GOOS
)

// DefaultPath returns the platform-standard location of the Claude Desktop
// configuration file.
func DefaultPath() (string, error) {
	switch goos {
	case "windows":
		appdata := osGetenv("APPDATA")
		if appdata == "" {
			return "", fmt.Errorf("could not determine APPDATA directory")
		}
		return filepath.Join(appdata, "Claude", "claude_desktop_config.json"), nil
	case "darwin":
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json"), nil
	default:
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), nil
	}
}

// ResolvePath returns the explicit override when non-empty, else the platform
// default.
func ResolvePath(override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return override, nil
	}
	return DefaultPath()
}

// BackupPath returns the automatic backup location for a config path.
func BackupPath(configPath string) string {
	return configPath + ".backup"
}

// BrokenPath returns where a corrupt primary file is parked before a restore
// overwrites it.
func BrokenPath(configPath string) string {
	return configPath + ".broken"
}
