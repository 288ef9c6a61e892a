package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"mcpmanager/internal/events"
	"mcpmanager/pkg/logging"
)

const watcherSubsystem = "ConfigWatcher"

// debounceWindow coalesces the bursts of write events editors produce when
// saving a file.
const debounceWindow = 250 * time.Millisecond

// ConfigWatcher emits a config-changed event whenever the configuration file
// is modified on disk by an external editor. The parent directory is watched
// rather than the file itself, because most editors replace the file on save
// and would otherwise detach the watch.
type ConfigWatcher struct {
	path        string
	broadcaster *events.Broadcaster
}

// NewConfigWatcher creates a watcher for the given config file path.
func NewConfigWatcher(path string, broadcaster *events.Broadcaster) *ConfigWatcher {
	return &ConfigWatcher{path: path, broadcaster: broadcaster}
}

// Run blocks until the context is cancelled, emitting config-changed events
// for writes, creates, renames, and removes of the watched file.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	logging.Info(watcherSubsystem, "Watching %s for changes", w.path)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				logging.Debug(watcherSubsystem, "Config file changed externally")
				w.broadcaster.Emit("config-changed", map[string]interface{}{"source": "external"})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn(watcherSubsystem, "Watch error: %v", err)
		}
	}
}
