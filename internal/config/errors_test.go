package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagnose(t *testing.T, content string) *ParseError {
	t.Helper()
	var cfg Config
	err := json.Unmarshal([]byte(content), &cfg)
	require.Error(t, err, "fixture must not parse")
	return DiagnoseJSON([]byte(content), err)
}

func TestDiagnoseJSON_Incomplete(t *testing.T) {
	pe := diagnose(t, `{"mcpServers": {`)
	assert.Equal(t, ParseKindIncomplete, pe.Kind)
	assert.Contains(t, pe.Message, "incomplete")
	assert.Contains(t, pe.Suggestion, "closing braces")
}

func TestDiagnoseJSON_TrailingComma(t *testing.T) {
	pe := diagnose(t, `{
  "mcpServers": {
    "time": {"command": "uvx", "args": ["a"],}
  }
}`)
	assert.Equal(t, ParseKindTrailingComma, pe.Kind)
	assert.Contains(t, pe.Suggestion, "trailing comma")
	assert.Equal(t, 3, pe.Line)
}

func TestDiagnoseJSON_Syntax(t *testing.T) {
	pe := diagnose(t, `{"mcpServers": {"time" "uvx"}}`)
	assert.Equal(t, ParseKindSyntax, pe.Kind)
	assert.NotZero(t, pe.Line)
	assert.NotZero(t, pe.Column)
}

func TestDiagnoseJSON_TypeMismatch(t *testing.T) {
	pe := diagnose(t, `{"mcpServers": {"time": {"command": 42, "args": []}}}`)
	assert.Equal(t, ParseKindSyntax, pe.Kind)
}

func TestFindDuplicateKey(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		expected   string
		serverName bool
		found      bool
	}{
		{
			name:    "no duplicates",
			content: `{"mcpServers": {"a": {"command": "x"}, "b": {"command": "y"}}}`,
		},
		{
			name:       "duplicate server name",
			content:    `{"mcpServers": {"a": {"command": "x"}, "a": {"command": "y"}}}`,
			expected:   "a",
			serverName: true,
			found:      true,
		},
		{
			name:     "duplicate at top level",
			content:  `{"mcpServers": {}, "mcpServers": {}}`,
			expected: "mcpServers",
			found:    true,
		},
		{
			name:     "duplicate env key is not a server name",
			content:  `{"mcpServers": {"a": {"command": "x", "env": {"TOKEN": "1", "TOKEN": "2"}}}}`,
			expected: "TOKEN",
			found:    true,
		},
		{
			name:    "same key in sibling objects is fine",
			content: `{"mcpServers": {"a": {"command": "x"}, "b": {"command": "y"}}}`,
		},
		{
			name:    "string values are not keys",
			content: `{"mcpServers": {"a": {"command": "a", "args": ["a", "a"]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, serverName, found := findDuplicateKey([]byte(tt.content))
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.serverName, serverName)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestDuplicateKeyError(t *testing.T) {
	pe := duplicateKeyError("time", true)
	assert.Equal(t, ParseKindDuplicateKey, pe.Kind)
	assert.Contains(t, pe.Message, `duplicate server name "time"`)

	pe = duplicateKeyError("TOKEN", false)
	assert.Equal(t, ParseKindDuplicateKey, pe.Kind)
	assert.Contains(t, pe.Message, `duplicate key "TOKEN"`)
	assert.NotContains(t, pe.Message, "server name")
}

func TestLineColumn(t *testing.T) {
	content := []byte("ab\ncd\nef")
	line, col := lineColumn(content, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = lineColumn(content, 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = lineColumn(content, 100)
	assert.Equal(t, 3, line)
}

func TestParseError_Error(t *testing.T) {
	withPos := &ParseError{Message: "bad", Line: 3, Column: 7}
	assert.Equal(t, "bad (line 3, column 7)", withPos.Error())

	noPos := &ParseError{Message: "bad"}
	assert.Equal(t, "bad", noPos.Error())
}
