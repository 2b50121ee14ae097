package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "dirloader")
	assert.Contains(t, stdout, "extract")
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "dirloader", cmd.Use)
	assert.True(t, cmd.SilenceUsage)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"load", "scan", "formats", "runs"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCommand_Version(t *testing.T) {
	prev := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = prev })

	stdout, _, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(stdout, "1.2.3"), "version output: %q", stdout)
}

func TestFormatsCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "formats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"FORMAT", "EXTENSIONS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"docx", ".docx"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"markdown", ".md,", ".markdown"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"text", ".txt,", ".text"}, strings.Fields(lines[3]))
}

func TestFormatsCommand_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "formats", "extra")
	assert.Error(t, err)
}
