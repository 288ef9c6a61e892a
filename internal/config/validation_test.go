package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{MCPServers: map[string]ServerEntry{
				"time": {Command: "uvx", Args: []string{"mcp-server-time"}},
			}},
		},
		{
			name:    "empty name",
			cfg:     Config{MCPServers: map[string]ServerEntry{"  ": {Command: "uvx"}}},
			wantErr: "name cannot be empty",
		},
		{
			name:    "empty command",
			cfg:     Config{MCPServers: map[string]ServerEntry{"x": {Command: " "}}},
			wantErr: "empty command",
		},
		{
			name:    "unquoted multi-word command",
			cfg:     Config{MCPServers: map[string]ServerEntry{"x": {Command: "docker run"}}},
			wantErr: "contains spaces",
		},
		{
			name: "quoted multi-word command allowed",
			cfg: Config{MCPServers: map[string]ServerEntry{
				"x": {Command: `"C:\Program Files\node\npx.exe"`},
			}},
		},
		{
			name: "empty config",
			cfg:  Config{MCPServers: map[string]ServerEntry{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStructure(&tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
