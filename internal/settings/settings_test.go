package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Empty(t, s.ClaudeConfigPath)
	assert.False(t, s.DarkMode)
	assert.False(t, s.MCPServerEnabled)
	assert.Equal(t, uint16(8000), s.MCPServerPort)
	assert.Equal(t, "/sse", s.MCPSSEPath)
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := NewStoreWithPath(filepath.Join(t.TempDir(), "settings.json"))
	loaded := store.Load()
	assert.Equal(t, DefaultSettings(), loaded)
	assert.Equal(t, DefaultSettings(), store.Current())
}

func TestStore_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	store := NewStoreWithPath(path)
	loaded := store.Load()
	assert.Equal(t, DefaultSettings(), loaded, "corrupt settings fall back to defaults")
}

func TestStore_SaveAndLoad(t *testing.T) {
	// The parent directory does not exist yet; Save must create it.
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewStoreWithPath(path)

	s := DefaultSettings()
	s.MCPServerEnabled = true
	s.MCPServerPort = 9001
	s.ClaudeConfigPath = "/custom/config.json"
	require.NoError(t, store.Save(s))

	assert.Equal(t, s, store.Current())

	fresh := NewStoreWithPath(path)
	assert.Equal(t, s, fresh.Load())
}

func TestStore_Apply_NotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewStoreWithPath(path)

	s := DefaultSettings()
	s.MCPServerEnabled = true
	s.MCPServerPort = 9100
	store.Apply(s)

	assert.Equal(t, s, store.Current())
	assert.NoFileExists(t, path)
	assert.Equal(t, DefaultSettings(), store.Load(), "a fresh load reads disk, not the override")
}

func TestStore_Load_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"darkMode": true}`), 0644))

	store := NewStoreWithPath(path)
	loaded := store.Load()
	assert.True(t, loaded.DarkMode)
	assert.Equal(t, uint16(8000), loaded.MCPServerPort, "absent fields keep their defaults")
	assert.Equal(t, "/sse", loaded.MCPSSEPath)
}

func TestDir_PerPlatform(t *testing.T) {
	prevGoos, prevHome, prevGetenv := goos, osUserHomeDir, osGetenv
	t.Cleanup(func() { goos, osUserHomeDir, osGetenv = prevGoos, prevHome, prevGetenv })

	osUserHomeDir = func() (string, error) { return "/home/u", nil }
	osGetenv = func(string) string { return `C:\Users\u\AppData\Roaming` }

	goos = "linux"
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".config", "mcp-manager"), dir)

	goos = "darwin"
	dir, err = Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", "Library", "Application Support", "mcp-manager"), dir)

	goos = "windows"
	dir, err = Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(`C:\Users\u\AppData\Roaming`, "mcp-manager"), dir)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.json"), path)
}
