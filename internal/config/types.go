package config

// ServerEntry is one managed external-tool process definition as stored in
// the configuration file.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// Config is the full configuration file: a mapping from server name to entry.
type Config struct {
	MCPServers map[string]ServerEntry `json:"mcpServers"`
}

// ServerInfo is a flattened view of one configured server, used for listings
// and details. Env carries the full variable values; callers that cross a
// trust boundary must sanitize before serializing.
type ServerInfo struct {
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// Outcome is an expected negative-or-positive result of a mutating operation.
// "Already exists" and "not found" are outcomes, not errors.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BackupInfo describes the automatic .backup file next to the configuration.
type BackupInfo struct {
	Path    string `json:"path"`
	Created string `json:"created"`
	Size    int64  `json:"size"`
	IsValid bool   `json:"is_valid"`
}
