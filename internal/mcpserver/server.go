package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcpmanager/internal/config"
	"mcpmanager/internal/presets"
	"mcpmanager/pkg/logging"
)

const subsystem = "ToolServer"

// ToolServer exposes configuration management as MCP tools over an SSE
// transport, so automation clients can manage servers remotely. It speaks
// only sanitized payloads: environment variable values never leave this
// process through it.
type ToolServer struct {
	store   *config.Store
	catalog *presets.Catalog
}

// NewToolServer creates a tool server over the given config store and preset
// catalog.
func NewToolServer(store *config.Store, catalog *presets.Catalog) *ToolServer {
	return &ToolServer{store: store, catalog: catalog}
}

// Run starts the SSE server on 127.0.0.1:<port> and blocks until the context
// is cancelled or the server fails. Implements the lifecycle runner contract.
func (t *ToolServer) Run(ctx context.Context, port uint16, ssePath string) error {
	mcpServer := server.NewMCPServer(
		"mcp-manager",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	t.registerTools(mcpServer)

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithSSEEndpoint(ssePath),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	errCh := make(chan error, 1)
	go func() {
		logging.Info(subsystem, "SSE server listening on %s%s", addr, ssePath)
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(subsystem, "SSE server shutdown: %v", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("SSE server failed: %w", err)
	}
}

func (t *ToolServer) registerTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_mcp_servers",
		mcp.WithDescription("List all MCP servers in the Claude configuration"),
	), t.handleListServers)

	s.AddTool(mcp.NewTool("get_mcp_server_details",
		mcp.WithDescription("Get the configuration of a single MCP server"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the server"),
		),
	), t.handleGetServerDetails)

	s.AddTool(mcp.NewTool("add_mcp_server",
		mcp.WithDescription("Add a new MCP server to the configuration"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Unique name for the server"),
		),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("Executable that launches the server"),
		),
		mcp.WithArray("args",
			mcp.Description("Command line arguments"),
		),
		mcp.WithObject("env",
			mcp.Description("Environment variables for the server"),
		),
	), t.handleAddServer)

	s.AddTool(mcp.NewTool("update_mcp_server",
		mcp.WithDescription("Update an existing MCP server, or create it when absent"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the server"),
		),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("Executable that launches the server"),
		),
		mcp.WithArray("args",
			mcp.Description("Command line arguments"),
		),
		mcp.WithObject("env",
			mcp.Description("Environment variables for the server"),
		),
	), t.handleUpdateServer)

	s.AddTool(mcp.NewTool("delete_mcp_server",
		mcp.WithDescription("Remove an MCP server from the configuration"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the server to remove"),
		),
	), t.handleDeleteServer)

	s.AddTool(mcp.NewTool("get_preset_servers",
		mcp.WithDescription("List all preset servers available for installation"),
	), t.handleGetPresets)

	s.AddTool(mcp.NewTool("get_preset_servers_filtered",
		mcp.WithDescription("List preset servers filtered by category, type, or installation state"),
		mcp.WithString("category",
			mcp.Description("Only presets in this category"),
		),
		mcp.WithString("server_type",
			mcp.Description("Only presets using this launcher (docker, npx, uvx, uv)"),
		),
		mcp.WithBoolean("exclude_installed",
			mcp.Description("Skip presets already present in the configuration"),
		),
	), t.handleGetPresetsFiltered)

	s.AddTool(mcp.NewTool("install_preset_server",
		mcp.WithDescription("Install a preset server into the configuration"),
		mcp.WithString("preset_name",
			mcp.Required(),
			mcp.Description("Name of the preset to install"),
		),
		mcp.WithObject("api_keys",
			mcp.Description("Values for the API keys the preset requires"),
		),
	), t.handleInstallPreset)
}
