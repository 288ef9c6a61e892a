package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mcpmanager/pkg/logging"
)

const subsystem = "SettingsStore"

// Store owns the on-disk application settings, with a cache that is updated
// synchronously on every successful load and save so lifecycle decisions
// always see the latest applied value without touching disk again.
//
// Unlike the config store, settings are deliberately loose: Load never fails
// the caller and falls back to defaults on a missing or unreadable file.
type Store struct {
	mu       sync.RWMutex
	cached   Settings
	pathFunc func() (string, error)
}

// NewStore creates a settings store using the platform default path.
func NewStore() *Store {
	return &Store{
		cached:   DefaultSettings(),
		pathFunc: Path,
	}
}

// NewStoreWithPath creates a settings store bound to an explicit file path.
func NewStoreWithPath(path string) *Store {
	return &Store{
		cached:   DefaultSettings(),
		pathFunc: func() (string, error) { return path, nil },
	}
}

// Load reads the settings file, falling back to defaults when the file is
// absent or unparsable. The cache is updated with whatever is returned.
func (s *Store) Load() Settings {
	loaded := DefaultSettings()

	path, err := s.pathFunc()
	if err != nil {
		logging.Warn(subsystem, "Could not determine settings path, using defaults: %v", err)
	} else if content, err := os.ReadFile(path); err != nil {
		if !os.IsNotExist(err) {
			logging.Warn(subsystem, "Failed to read settings file %s, using defaults: %v", path, err)
		}
	} else if err := json.Unmarshal(content, &loaded); err != nil {
		logging.Warn(subsystem, "Failed to parse settings file %s, using defaults: %v", path, err)
		loaded = DefaultSettings()
	}

	s.mu.Lock()
	s.cached = loaded
	s.mu.Unlock()

	return loaded
}

// Save writes the settings to disk, creating the parent directory when
// missing, and updates the cache on success.
func (s *Store) Save(settings Settings) error {
	path, err := s.pathFunc()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	s.mu.Lock()
	s.cached = settings
	s.mu.Unlock()

	logging.Debug(subsystem, "Saved settings to %s", path)
	return nil
}

// Apply replaces the cached settings without touching disk. Used for per-run
// overrides, such as command line flags, that must not be persisted.
func (s *Store) Apply(settings Settings) {
	s.mu.Lock()
	s.cached = settings
	s.mu.Unlock()
}

// Current returns the cached settings without touching disk.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}
