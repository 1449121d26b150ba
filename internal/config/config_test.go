package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.BudgetCSVPath)
	assert.Equal(t, "./data/workspace.db", cfg.WorkspaceDBPath)
	assert.Equal(t, "summary", cfg.DefaultView)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromFile(t *testing.T) {
	content := `
budget_csv_path = "/data/budget.csv"
projections_csv_path = "/data/projections.csv"
workspace_db_path = "/data/workspace.db"
default_view = "categories"
log_level = "debug"
`
	configPath := filepath.Join(t.TempDir(), "budgetbook.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/data/budget.csv", cfg.BudgetCSVPath)
	assert.Equal(t, "/data/projections.csv", cfg.ProjectionsCSVPath)
	assert.Equal(t, "/data/workspace.db", cfg.WorkspaceDBPath)
	assert.Equal(t, "categories", cfg.DefaultView)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	content := `budget_csv_path = "/from/file.csv"`
	configPath := filepath.Join(t.TempDir(), "budgetbook.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	t.Setenv("BUDGETBOOK_CSV_PATH", "/from/env.csv")
	t.Setenv("BUDGETBOOK_LOG_LEVEL", "warn")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/from/env.csv", cfg.BudgetCSVPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{
			BudgetCSVPath:   filepath.Join(t.TempDir(), "budget.csv"),
			WorkspaceDBPath: filepath.Join(t.TempDir(), "workspace.db"),
			LogLevel:        "info",
		}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("collects every problem", func(t *testing.T) {
		cfg := &Config{
			BudgetCSVPath:   "/data/budget.txt",
			WorkspaceDBPath: "",
			LogLevel:        "loud",
		}
		err := cfg.Validate()
		require.Error(t, err)
		msg := err.Error()
		assert.True(t, strings.Contains(msg, "workspace database path"))
		assert.True(t, strings.Contains(msg, ".csv"))
		assert.True(t, strings.Contains(msg, "log level"))
	})

	t.Run("creates missing workspace directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		cfg := &Config{
			WorkspaceDBPath: filepath.Join(dir, "workspace.db"),
			LogLevel:        "info",
		}
		require.NoError(t, cfg.Validate())
		_, err := os.Stat(dir)
		assert.NoError(t, err)
	})
}
