package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPlatform(t *testing.T, osName, home, appdata string) {
	t.Helper()
	prevGoos, prevHome, prevGetenv := goos, osUserHomeDir, osGetenv
	goos = osName
	osUserHomeDir = func() (string, error) { return home, nil }
	osGetenv = func(key string) string {
		if key == "APPDATA" {
			return appdata
		}
		return ""
	}
	t.Cleanup(func() {
		goos, osUserHomeDir, osGetenv = prevGoos, prevHome, prevGetenv
	})
}

func TestDefaultPath(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".config", "Claude", "claude_desktop_config.json"), path)

	withPlatform(t, "darwin", "/Users/u", "")
	path, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/Users/u", "Library", "Application Support", "Claude", "claude_desktop_config.json"), path)

	withPlatform(t, "windows", "", `C:\Users\u\AppData\Roaming`)
	path, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(`C:\Users\u\AppData\Roaming`, "Claude", "claude_desktop_config.json"), path)
}

func TestDefaultPath_WindowsWithoutAppData(t *testing.T) {
	withPlatform(t, "windows", "", "")
	_, err := DefaultPath()
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	withPlatform(t, "linux", "/home/u", "")

	path, err := ResolvePath("/custom/config.json")
	require.NoError(t, err)
	assert.Equal(t, "/custom/config.json", path)

	path, err = ResolvePath("   ")
	require.NoError(t, err)
	assert.Contains(t, path, "Claude")
}

func TestBackupAndBrokenPaths(t *testing.T) {
	assert.Equal(t, "/a/b.json.backup", BackupPath("/a/b.json"))
	assert.Equal(t, "/a/b.json.broken", BrokenPath("/a/b.json"))
}
