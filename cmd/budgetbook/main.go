package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budgetbook/internal/cli"
	"budgetbook/internal/config"
	"budgetbook/internal/log"
	"budgetbook/internal/services"
	"budgetbook/internal/workspace"
)

var (
	flagConfig string
	flagFile   string

	logger *log.Logger
	cfg    *config.Config
	ws     *workspace.Store
)

func main() {
	os.Exit(run())
}

// run executes the root command and releases the workspace handle on both
// the success and error paths before the process exits.
func run() int {
	err := rootCmd.Execute()
	if ws != nil {
		ws.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "budgetbook",
	Short: "Categorize household spending and plan per-week budgets",
	Long: `Budgetbook reads transaction records from a CSV file, attributes them to
two individuals plus a shared joint account (joint amounts are split in
half), and renders essential/non-essential breakdowns and simple per-week
budget projections.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.LoadEnvFile()
		bootstrapLogger := cli.SetupLogger("info")
		cfg = cli.LoadAndValidateConfig(bootstrapLogger, flagConfig)
		logger = cli.SetupLogger(cfg.LogLevel)
		ws = cli.InitWorkspace(logger, cfg.WorkspaceDBPath)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a budgetbook.toml config file")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "budget CSV file (defaults to config, then the last-used file)")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// resolveBudgetPath picks the budget file: the --file flag, then the config
// file, then the workspace's remembered path. With none of those the user
// effectively cancelled file selection, which exits zero.
func resolveBudgetPath(cmd *cobra.Command) string {
	path := flagFile
	if path == "" {
		path = cfg.BudgetCSVPath
	}
	if path == "" {
		path = ws.LastBudgetPath(cmd.Context())
	}
	if path == "" {
		cli.NoFileSelected()
	}
	cli.EnsureBudgetFile(logger, path)
	return path
}

// loadService builds the service over the resolved budget file.
func loadService(cmd *cobra.Command) (*services.BudgetService, error) {
	path := resolveBudgetPath(cmd)
	svc := services.NewBudgetService(ws, logger)
	if err := svc.Load(cmd.Context(), path); err != nil {
		return nil, err
	}
	return svc, nil
}
