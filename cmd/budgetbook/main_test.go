package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbook/internal/workspace"
)

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "budgetbook", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "household spending")
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"summary", "import", "plan", "filter", "periods", "snapshot"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRun_ClosesWorkspaceOnError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BUDGETBOOK_CSV_PATH", filepath.Join(dir, "budget.csv"))
	t.Setenv("BUDGETBOOK_WORKSPACE_DB", filepath.Join(dir, "workspace.db"))

	// Importing a file that does not exist makes Execute return an error.
	rootCmd.SetArgs([]string{"import", filepath.Join(dir, "missing.csv")})
	defer rootCmd.SetArgs(nil)

	code := run()
	assert.Equal(t, 1, code)

	// The sqlite handle must be released on the error path too.
	require.NotNil(t, ws)
	_, err := ws.Get(context.Background(), workspace.KeyLastBudgetPath)
	require.Error(t, err)
	assert.NotErrorIs(t, err, workspace.ErrNotFound)
}
