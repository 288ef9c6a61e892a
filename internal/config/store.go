package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"mcpmanager/pkg/logging"
)

const subsystem = "ConfigStore"

// Notifier receives fire-and-forget notifications after successful mutations.
// Delivery failures are the notifier's problem; the store never waits.
type Notifier interface {
	Emit(event string, payload map[string]interface{})
}

// Store owns the on-disk configuration file: load, validate, cache, and
// backup-guarded save. The cache is a read-mostly view; every mutating
// operation re-reads the file first so concurrent external edits between GUI
// actions are not clobbered.
type Store struct {
	mu       sync.RWMutex
	cached   *Config
	path     string
	notifier Notifier
}

// NewStore creates an empty store. No path is resolved until the first Load.
func NewStore() *Store {
	return &Store{}
}

// SetNotifier installs the event sink used after successful mutations.
// Call during bootstrap, before the store is shared.
func (s *Store) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Load reads and validates the configuration file. The explicit override
// wins over the platform default path. On any failure the cache is left
// untouched; on success the cache and the resolved path are replaced.
func (s *Store) Load(override string) (*Config, error) {
	path, err := ResolvePath(override)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config at %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		pe := DiagnoseJSON(content, err)
		pe.HasBackup = fileExists(BackupPath(path))
		pe.Path = path
		return nil, pe
	}

	// Valid JSON can still carry duplicate keys; the decoder keeps the last
	// one silently, so this is classified as a parse failure here.
	if key, serverName, found := findDuplicateKey(content); found {
		pe := duplicateKeyError(key, serverName)
		pe.HasBackup = fileExists(BackupPath(path))
		pe.Path = path
		return nil, pe
	}

	if cfg.MCPServers == nil {
		cfg.MCPServers = map[string]ServerEntry{}
	}

	if err := ValidateStructure(&cfg); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = cloneConfig(&cfg)
	s.path = path
	s.mu.Unlock()

	logging.Debug(subsystem, "Loaded %d servers from %s", len(cfg.MCPServers), path)
	return &cfg, nil
}

// Save writes the configuration to the previously resolved path. The current
// file is copied to the .backup path first; a failed backup aborts the save.
// The cache is replaced only after the write succeeds.
func (s *Store) Save(cfg *Config) error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()

	if path == "" {
		return ErrPathNotSet
	}

	if err := copyFile(path, BackupPath(path)); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s.mu.Lock()
	s.cached = cloneConfig(cfg)
	s.mu.Unlock()

	logging.Debug(subsystem, "Saved %d servers to %s", len(cfg.MCPServers), path)
	return nil
}

// Path returns the resolved config path, or "" before the first Load.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Cached returns a snapshot of the last successfully loaded configuration,
// or nil when nothing has been loaded yet.
func (s *Store) Cached() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return nil
	}
	return cloneConfig(s.cached)
}

// ListServers loads the configuration fresh and returns the entries sorted
// alphabetically by name.
func (s *Store) ListServers(override string) ([]ServerInfo, error) {
	cfg, err := s.Load(override)
	if err != nil {
		return nil, err
	}

	servers := make([]ServerInfo, 0, len(cfg.MCPServers))
	for name, entry := range cfg.MCPServers {
		env := entry.Env
		if env == nil {
			env = map[string]string{}
		}
		servers = append(servers, ServerInfo{
			Name:    name,
			Command: entry.Command,
			Args:    entry.Args,
			Env:     env,
		})
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers, nil
}

// GetServerDetails returns one entry by name, reading the file fresh.
func (s *Store) GetServerDetails(name, override string) (*ServerInfo, error) {
	cfg, err := s.Load(override)
	if err != nil {
		return nil, err
	}

	entry, ok := cfg.MCPServers[name]
	if !ok {
		return nil, fmt.Errorf("server %q not found", name)
	}

	env := entry.Env
	if env == nil {
		env = map[string]string{}
	}
	return &ServerInfo{Name: name, Command: entry.Command, Args: entry.Args, Env: env}, nil
}

// AddServer inserts a new entry. An existing name is a negative outcome, not
// an error. The configuration is re-read from disk before the insert.
func (s *Store) AddServer(name string, entry ServerEntry) (Outcome, error) {
	cfg, err := s.Load(s.Path())
	if err != nil {
		return Outcome{}, err
	}

	if _, exists := cfg.MCPServers[name]; exists {
		return Outcome{Success: false, Message: fmt.Sprintf("Server %q already exists", name)}, nil
	}

	cfg.MCPServers[name] = normalizeEntry(entry)

	if err := s.Save(cfg); err != nil {
		return Outcome{}, err
	}

	s.emit("server-added", map[string]interface{}{"name": name})
	s.emit("config-changed", map[string]interface{}{})
	return Outcome{Success: true, Message: fmt.Sprintf("Server %q added successfully", name)}, nil
}

// UpdateServer overwrites an entry, creating it when absent.
func (s *Store) UpdateServer(name string, entry ServerEntry) (Outcome, error) {
	cfg, err := s.Load(s.Path())
	if err != nil {
		return Outcome{}, err
	}

	cfg.MCPServers[name] = normalizeEntry(entry)

	if err := s.Save(cfg); err != nil {
		return Outcome{}, err
	}

	s.emit("server-updated", map[string]interface{}{"name": name})
	s.emit("config-changed", map[string]interface{}{})
	return Outcome{Success: true, Message: fmt.Sprintf("Server %q updated successfully", name)}, nil
}

// DeleteServer removes an entry. A missing name is a negative outcome and
// performs no write, so the backup is not churned.
func (s *Store) DeleteServer(name string) (Outcome, error) {
	cfg, err := s.Load(s.Path())
	if err != nil {
		return Outcome{}, err
	}

	if _, exists := cfg.MCPServers[name]; !exists {
		return Outcome{Success: false, Message: fmt.Sprintf("Server %q not found", name)}, nil
	}

	delete(cfg.MCPServers, name)

	if err := s.Save(cfg); err != nil {
		return Outcome{}, err
	}

	s.emit("server-deleted", map[string]interface{}{"name": name})
	s.emit("config-changed", map[string]interface{}{})
	return Outcome{Success: true, Message: fmt.Sprintf("Server %q deleted successfully", name)}, nil
}

// RestoreFromBackup copies the .backup file over the primary after checking
// that the backup parses. A present-but-corrupt primary is parked at the
// .broken path first and never deleted automatically.
func (s *Store) RestoreFromBackup(override string) (Outcome, error) {
	path, err := ResolvePath(override)
	if err != nil {
		return Outcome{}, err
	}

	backupPath := BackupPath(path)
	if !fileExists(backupPath) {
		return Outcome{Success: false, Message: "No backup file found"}, nil
	}

	backupContent, err := os.ReadFile(backupPath)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read backup file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(backupContent, &cfg); err != nil {
		return Outcome{}, fmt.Errorf("backup file is corrupted or invalid")
	}

	if fileExists(path) {
		if err := copyFile(path, BrokenPath(path)); err != nil {
			return Outcome{}, fmt.Errorf("failed to back up current file: %w", err)
		}
	}

	if err := copyFile(backupPath, path); err != nil {
		return Outcome{}, fmt.Errorf("failed to restore from backup: %w", err)
	}

	logging.Info(subsystem, "Restored configuration from %s", backupPath)
	return Outcome{Success: true, Message: "Configuration restored from backup successfully"}, nil
}

// CreateManualBackup makes a timestamp-suffixed copy of the current file,
// independent of the automatic .backup.
func (s *Store) CreateManualBackup(override string) (Outcome, error) {
	path, err := ResolvePath(override)
	if err != nil {
		return Outcome{}, err
	}

	if !fileExists(path) {
		return Outcome{Success: false, Message: "Configuration file does not exist"}, nil
	}

	manualPath := fmt.Sprintf("%s.manual_backup_%d", path, time.Now().Unix())
	if err := copyFile(path, manualPath); err != nil {
		return Outcome{}, fmt.Errorf("failed to create manual backup: %w", err)
	}

	return Outcome{Success: true, Message: fmt.Sprintf("Manual backup created: %s", manualPath)}, nil
}

// BackupDetails describes the automatic backup file, or returns nil when
// none exists.
func (s *Store) BackupDetails(override string) (*BackupInfo, error) {
	path, err := ResolvePath(override)
	if err != nil {
		return nil, err
	}

	backupPath := BackupPath(path)
	info, err := os.Stat(backupPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup file: %w", err)
	}

	isValid := false
	if content, err := os.ReadFile(backupPath); err == nil {
		var cfg Config
		isValid = json.Unmarshal(content, &cfg) == nil
	}

	return &BackupInfo{
		Path:    backupPath,
		Created: info.ModTime().Format(time.RFC3339),
		Size:    info.Size(),
		IsValid: isValid,
	}, nil
}

func (s *Store) emit(event string, payload map[string]interface{}) {
	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n != nil {
		n.Emit(event, payload)
	}
}

// normalizeEntry drops an empty env map so it serializes as absent.
func normalizeEntry(entry ServerEntry) ServerEntry {
	if len(entry.Env) == 0 {
		entry.Env = nil
	}
	if entry.Args == nil {
		entry.Args = []string{}
	}
	return entry
}

func cloneConfig(cfg *Config) *Config {
	out := &Config{MCPServers: make(map[string]ServerEntry, len(cfg.MCPServers))}
	for name, entry := range cfg.MCPServers {
		e := ServerEntry{Command: entry.Command}
		e.Args = append([]string(nil), entry.Args...)
		if entry.Env != nil {
			e.Env = make(map[string]string, len(entry.Env))
			for k, v := range entry.Env {
				e.Env[k] = v
			}
		}
		out.MCPServers[name] = e
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
