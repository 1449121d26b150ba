package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the explicit settings the rest of the application is wired
// with. There are no process-wide singletons; callers pass the struct (or
// values from it) into the components that need them.
type Config struct {
	// Files
	BudgetCSVPath      string `mapstructure:"budget_csv_path"`
	ProjectionsCSVPath string `mapstructure:"projections_csv_path"`

	// Workspace database
	WorkspaceDBPath string `mapstructure:"workspace_db_path"`

	// Presentation
	DefaultView string `mapstructure:"default_view"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from an optional TOML file, then applies
// environment overrides. An empty configPath skips the file entirely.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("budget_csv_path", "")
	v.SetDefault("projections_csv_path", "")
	v.SetDefault("workspace_db_path", "./data/workspace.db")
	v.SetDefault("default_view", "summary")
	v.SetDefault("log_level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BudgetCSVPath = getEnv("BUDGETBOOK_CSV_PATH", cfg.BudgetCSVPath)
	cfg.ProjectionsCSVPath = getEnv("BUDGETBOOK_PROJECTIONS_PATH", cfg.ProjectionsCSVPath)
	cfg.WorkspaceDBPath = getEnv("BUDGETBOOK_WORKSPACE_DB", cfg.WorkspaceDBPath)
	cfg.DefaultView = getEnv("BUDGETBOOK_DEFAULT_VIEW", cfg.DefaultView)
	cfg.LogLevel = getEnv("BUDGETBOOK_LOG_LEVEL", cfg.LogLevel)

	return &cfg, nil
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.WorkspaceDBPath == "" {
		errs = append(errs, "workspace database path cannot be empty")
	} else if dir := filepath.Dir(c.WorkspaceDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create workspace directory '%s': %v", dir, err))
			}
		}
	}

	if c.BudgetCSVPath != "" && !strings.EqualFold(filepath.Ext(c.BudgetCSVPath), ".csv") {
		errs = append(errs, fmt.Sprintf("budget file '%s' must be a .csv file", c.BudgetCSVPath))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
