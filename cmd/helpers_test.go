package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpmanager/internal/config"
)

func TestParseEnvPairs(t *testing.T) {
	env, err := parseEnvPairs([]string{"KEY=value", "TOKEN=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"KEY": "value", "TOKEN": "a=b"}, env)

	env, err = parseEnvPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, env)

	_, err = parseEnvPairs([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseEnvPairs([]string{"=value"})
	assert.Error(t, err)
}

func TestPrintOutcome(t *testing.T) {
	assert.NoError(t, printOutcome(config.Outcome{Success: true, Message: "ok"}))
	assert.Error(t, printOutcome(config.Outcome{Success: false, Message: "refused"}))
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{
		"serve", "list", "get", "add", "edit", "remove",
		"presets", "install", "backup", "restore", "port", "settings", "version",
	}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "missing subcommand %q", name)
	}
}

func TestVersionInjection(t *testing.T) {
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", GetVersion())
}
