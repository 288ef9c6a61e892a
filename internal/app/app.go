package app

import (
	"path/filepath"

	"mcpmanager/internal/config"
	"mcpmanager/internal/events"
	"mcpmanager/internal/lifecycle"
	"mcpmanager/internal/mcpserver"
	"mcpmanager/internal/presets"
	"mcpmanager/internal/settings"
	"mcpmanager/pkg/logging"
)

const subsystem = "App"

// App wires the long-lived components together: one config store, one
// settings store, the preset catalog, the event broadcaster, and the
// lifecycle manager supervising the embedded tool server.
type App struct {
	ConfigStore   *config.Store
	SettingsStore *settings.Store
	Catalog       *presets.Catalog
	Broadcaster   *events.Broadcaster
	Lifecycle     *lifecycle.Manager
}

// New constructs the application graph. The preset catalog picks up an
// optional presets.yaml next to the settings file.
func New() *App {
	configStore := config.NewStore()
	settingsStore := settings.NewStore()
	broadcaster := events.NewBroadcaster(64)

	configStore.SetNotifier(broadcaster)

	catalog := presets.NewCatalog()
	if dir, err := settings.Dir(); err == nil {
		catalog = presets.NewCatalogWithUserFile(filepath.Join(dir, "presets.yaml"))
	}

	toolServer := mcpserver.NewToolServer(configStore, catalog)
	manager := lifecycle.NewManager(settingsStore, toolServer)

	return &App{
		ConfigStore:   configStore,
		SettingsStore: settingsStore,
		Catalog:       catalog,
		Broadcaster:   broadcaster,
		Lifecycle:     manager,
	}
}

// Bootstrap loads settings and performs the startup side effects: resolving
// the config path and auto-starting the tool server when enabled. Failures
// here are logged, never fatal; the application remains usable for repair.
func (a *App) Bootstrap() {
	loaded := a.SettingsStore.Load()

	if _, err := a.ConfigStore.Load(loaded.ClaudeConfigPath); err != nil {
		logging.Warn(subsystem, "Initial config load failed: %v", err)
	}

	if loaded.MCPServerEnabled {
		outcome, err := a.Lifecycle.Start()
		if err != nil {
			logging.Error(subsystem, err, "Auto-start of MCP server failed")
		} else if !outcome.Success {
			logging.Warn(subsystem, "MCP server not auto-started: %s", outcome.Message)
		}
	}
}

// Shutdown stops the tool server and releases event subscribers.
func (a *App) Shutdown() {
	if _, err := a.Lifecycle.Stop(); err != nil {
		logging.Error(subsystem, err, "Failed to stop MCP server")
	}
	a.Broadcaster.Close()
}
