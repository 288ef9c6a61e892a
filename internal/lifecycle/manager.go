package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"mcpmanager/internal/config"
	"mcpmanager/internal/settings"
	"mcpmanager/pkg/logging"
)

const subsystem = "Lifecycle"

// Runner is the long-running server the manager supervises. Run blocks until
// the context is cancelled or the server fails.
type Runner interface {
	Run(ctx context.Context, port uint16, ssePath string) error
}

// Status is a point-in-time snapshot of the supervised server.
type Status struct {
	Running bool   `json:"running"`
	Port    uint16 `json:"port"`
	SSEPath string `json:"ssePath"`
	URL     string `json:"url"`
}

// Manager starts and stops the embedded tool server on demand. Status and the
// cancellation handle live in separate lock cells so a status read never waits
// on a start or stop in progress.
//
// Each start gets a fresh generation number. A supervisor goroutine may still
// be unwinding from a stopped run while the next one is already up; the
// generation lets it tell whether the slot still belongs to it.
type Manager struct {
	settings *settings.Store
	runner   Runner

	statusMu sync.RWMutex
	status   Status

	cancelMu   sync.Mutex
	cancel     context.CancelFunc
	generation uint64
}

// NewManager creates a manager over the given settings store and runner.
func NewManager(settingsStore *settings.Store, runner Runner) *Manager {
	return &Manager{
		settings: settingsStore,
		runner:   runner,
	}
}

// Start launches the server in the background. Expected refusals (disabled in
// settings, already running, port occupied) are negative outcomes, not
// errors. Start does not wait for the server to come up; a failure after
// launch resets the status asynchronously.
func (m *Manager) Start() (config.Outcome, error) {
	// The settings cache is kept fresh by load/save/apply, so lifecycle
	// decisions never need to touch disk.
	cfg := m.settings.Current()

	if !cfg.MCPServerEnabled {
		return config.Outcome{Success: false, Message: "MCP server is disabled in settings"}, nil
	}

	m.cancelMu.Lock()
	defer m.cancelMu.Unlock()

	if m.cancel != nil {
		return config.Outcome{Success: false, Message: "MCP server is already running"}, nil
	}

	if err := probePort(cfg.MCPServerPort); err != nil {
		return config.Outcome{
			Success: false,
			Message: fmt.Sprintf("Port %d is already in use", cfg.MCPServerPort),
		}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.generation++
	gen := m.generation

	m.setStatus(Status{
		Running: true,
		Port:    cfg.MCPServerPort,
		SSEPath: cfg.MCPSSEPath,
		URL:     fmt.Sprintf("http://127.0.0.1:%d%s", cfg.MCPServerPort, cfg.MCPSSEPath),
	})
	logging.Info(subsystem, "Starting MCP server on port %d", cfg.MCPServerPort)

	go m.supervise(ctx, gen, cfg.MCPServerPort, cfg.MCPSSEPath)

	return config.Outcome{
		Success: true,
		Message: fmt.Sprintf("MCP server started on port %d", cfg.MCPServerPort),
	}, nil
}

func (m *Manager) supervise(ctx context.Context, gen uint64, port uint16, ssePath string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(subsystem, fmt.Errorf("panic: %v", r), "MCP server crashed")
			m.resetRun(gen)
		}
	}()

	err := m.runner.Run(ctx, port, ssePath)
	if errors.Is(err, context.Canceled) {
		// Stop already consumed the handle and cleared the status.
		return
	}
	if err != nil {
		logging.Error(subsystem, err, "MCP server exited unexpectedly")
	}
	m.resetRun(gen)
}

// Stop cancels the running server. The status flips to stopped immediately;
// the server goroutine winds down on its own.
func (m *Manager) Stop() (config.Outcome, error) {
	m.cancelMu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.cancelMu.Unlock()

	if cancel == nil {
		return config.Outcome{Success: false, Message: "MCP server is not running"}, nil
	}

	cancel()
	m.setStatus(Status{})
	logging.Info(subsystem, "MCP server stopped")

	return config.Outcome{Success: true, Message: "MCP server stopped"}, nil
}

// Status returns the current snapshot.
func (m *Manager) Status() Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}

// ValidatePort checks whether the server could bind the given port right now.
// Privileged ports are refused outright without probing.
func (m *Manager) ValidatePort(port uint16) config.Outcome {
	if port < 1024 {
		return config.Outcome{
			Success: false,
			Message: fmt.Sprintf("Port %d requires elevated privileges; choose a port of 1024 or higher", port),
		}
	}
	if err := probePort(port); err != nil {
		return config.Outcome{Success: false, Message: fmt.Sprintf("Port %d is already in use", port)}
	}
	return config.Outcome{Success: true, Message: fmt.Sprintf("Port %d is available", port)}
}

func (m *Manager) setStatus(s Status) {
	m.statusMu.Lock()
	m.status = s
	m.statusMu.Unlock()
}

// resetRun clears the status and cancellation slot after a server goroutine
// exits, but only while the slot still belongs to that run. A supervisor
// unwinding from an earlier run must not cancel its replacement.
func (m *Manager) resetRun(gen uint64) {
	m.cancelMu.Lock()
	if gen != m.generation {
		m.cancelMu.Unlock()
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.cancelMu.Unlock()
	m.setStatus(Status{})
}

// probePort is a best-effort availability check: bind and release. The port
// can still be taken between the probe and the real bind; the server's own
// bind error is the authority then.
func probePort(port uint16) error {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return err
	}
	return l.Close()
}
