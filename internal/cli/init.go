// Package cli provides common initialization for the budgetbook commands:
// environment loading, logging, configuration, and workspace wiring.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"budgetbook/internal/config"
	"budgetbook/internal/csvio"
	"budgetbook/internal/log"
	"budgetbook/internal/workspace"
)

// Process exit codes observable by scripts wrapping the tool.
const (
	ExitOK            = 0 // includes "no file selected" on first run
	ExitCSVInitFailed = 1
	ExitWiringFailed  = 2
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes the component logger at the configured level and
// installs it as the process default.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	cfg.Handler = nil
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it, exiting with
// the wiring failure code when it is unusable.
func LoadAndValidateConfig(logger *log.Logger, configPath string) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Failed to load configuration", log.FieldError, err, log.FieldPath, configPath)
		os.Exit(ExitWiringFailed)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(ExitWiringFailed)
	}
	return cfg
}

// InitWorkspace opens the workspace store or exits with the wiring failure
// code. The workspace is a required service; without it last-used paths and
// statement periods cannot be tracked.
func InitWorkspace(logger *log.Logger, dbPath string) *workspace.Store {
	ws, err := workspace.Open(dbPath)
	if err != nil {
		logger.Error("Failed to initialize workspace store", log.FieldError, err, log.FieldPath, dbPath)
		os.Exit(ExitWiringFailed)
	}
	return ws
}

// EnsureBudgetFile makes sure the budget file exists, creating it with a
// header row on first run. Failure to create it is fatal with its own exit
// code; an existing file is never touched.
func EnsureBudgetFile(logger *log.Logger, path string) {
	if err := csvio.EnsureBudgetFile(path); err != nil {
		logger.Error("Failed to initialize budget file", log.FieldError, err, log.FieldPath, path)
		os.Exit(ExitCSVInitFailed)
	}
}

// NoFileSelected prints the cancellation message and exits successfully.
// Declining to pick a file is not an error.
func NoFileSelected() {
	fmt.Fprintln(os.Stderr, "no budget file selected; pass --file or set budget_csv_path")
	os.Exit(ExitOK)
}
