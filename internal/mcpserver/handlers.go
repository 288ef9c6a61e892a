package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcpmanager/internal/config"
	"mcpmanager/internal/presets"
)

// jsonResult marshals v into an indented JSON text result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format response: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func outcomeResult(o config.Outcome) *mcp.CallToolResult {
	return jsonResult(o)
}

func (t *ToolServer) handleListServers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	servers, err := t.store.ListServers(t.store.Path())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load configuration: %v", err)), nil
	}

	sanitized := make([]sanitizedServer, 0, len(servers))
	for _, s := range servers {
		sanitized = append(sanitized, sanitizeServer(s))
	}

	return jsonResult(map[string]interface{}{
		"servers": sanitized,
		"count":   len(sanitized),
	}), nil
}

func (t *ToolServer) handleGetServerDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := t.store.GetServerDetails(name, t.store.Path())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get server details: %v", err)), nil
	}

	return jsonResult(sanitizeServer(*info)), nil
}

func (t *ToolServer) handleAddServer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, entry, errResult := serverEntryFromRequest(request)
	if errResult != nil {
		return errResult, nil
	}

	outcome, err := t.store.AddServer(name, entry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add server: %v", err)), nil
	}
	return outcomeResult(outcome), nil
}

func (t *ToolServer) handleUpdateServer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, entry, errResult := serverEntryFromRequest(request)
	if errResult != nil {
		return errResult, nil
	}

	outcome, err := t.store.UpdateServer(name, entry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update server: %v", err)), nil
	}
	return outcomeResult(outcome), nil
}

func (t *ToolServer) handleDeleteServer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome, err := t.store.DeleteServer(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete server: %v", err)), nil
	}
	return outcomeResult(outcome), nil
}

func (t *ToolServer) handleGetPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	installed := t.installedNames()

	all := t.catalog.All()
	views := make([]presetView, 0, len(all))
	for _, p := range all {
		views = append(views, viewPreset(p, installed[p.Name]))
	}

	return jsonResult(map[string]interface{}{
		"presets":    views,
		"count":      len(views),
		"categories": t.catalog.Categories(),
	}), nil
}

func (t *ToolServer) handleGetPresetsFiltered(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	category, _ := args["category"].(string)
	serverType, _ := args["server_type"].(string)
	excludeInstalled, _ := args["exclude_installed"].(bool)

	installed := t.installedNames()

	var views []presetView
	totalAvailable := 0
	excludedInstalled := 0
	for _, p := range t.catalog.All() {
		if category != "" && p.Category != category {
			continue
		}
		if serverType != "" && p.ServerType != presets.ServerTypeFromCommand(serverType) {
			continue
		}
		totalAvailable++
		isInstalled := installed[p.Name]
		if excludeInstalled && isInstalled {
			excludedInstalled++
			continue
		}
		views = append(views, viewPreset(p, isInstalled))
	}
	if views == nil {
		views = []presetView{}
	}

	return jsonResult(map[string]interface{}{
		"presets":            views,
		"count":              len(views),
		"total_available":    totalAvailable,
		"excluded_installed": excludedInstalled,
	}), nil
}

func (t *ToolServer) handleInstallPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("preset_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	preset := t.catalog.ByName(name)
	if preset == nil {
		return mcp.NewToolResultError(fmt.Sprintf("Preset %q not found", name)), nil
	}

	apiKeys := stringMapArgument(request, "api_keys")

	var missing []string
	for _, key := range preset.APIKeys {
		if key.Required && apiKeys[key.Name] == "" {
			missing = append(missing, key.Name)
		}
	}
	if len(missing) > 0 {
		return jsonResult(map[string]interface{}{
			"success":      false,
			"message":      fmt.Sprintf("Preset %q requires API keys that were not provided", name),
			"missing_keys": missing,
		}), nil
	}

	entry := config.ServerEntry{
		Command: preset.Command,
		Args:    append([]string(nil), preset.Args...),
	}
	if len(preset.Env) > 0 || len(apiKeys) > 0 {
		entry.Env = make(map[string]string, len(preset.Env)+len(apiKeys))
		for k, v := range preset.Env {
			entry.Env[k] = v
		}
		for k, v := range apiKeys {
			entry.Env[k] = v
		}
	}

	outcome, err := t.store.AddServer(name, entry)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to install preset: %v", err)), nil
	}
	return outcomeResult(outcome), nil
}

// installedNames returns the names currently present in the configuration.
// A failed load degrades to an empty set rather than failing preset listing.
func (t *ToolServer) installedNames() map[string]bool {
	installed := map[string]bool{}
	servers, err := t.store.ListServers(t.store.Path())
	if err != nil {
		return installed
	}
	for _, s := range servers {
		installed[s.Name] = true
	}
	return installed
}

// serverEntryFromRequest parses the shared name/command/args/env argument set
// of the add and update tools.
func serverEntryFromRequest(request mcp.CallToolRequest) (string, config.ServerEntry, *mcp.CallToolResult) {
	name, err := request.RequireString("name")
	if err != nil {
		return "", config.ServerEntry{}, mcp.NewToolResultError(err.Error())
	}
	command, err := request.RequireString("command")
	if err != nil {
		return "", config.ServerEntry{}, mcp.NewToolResultError(err.Error())
	}

	entry := config.ServerEntry{
		Command: command,
		Args:    stringSliceArgument(request, "args"),
		Env:     stringMapArgument(request, "env"),
	}
	return name, entry, nil
}

func stringSliceArgument(request mcp.CallToolRequest, key string) []string {
	raw, ok := request.GetArguments()[key].([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMapArgument(request mcp.CallToolRequest, key string) map[string]string {
	raw, ok := request.GetArguments()[key].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
