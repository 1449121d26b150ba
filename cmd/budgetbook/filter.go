package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"budgetbook/internal/collection"
)

var (
	flagFilterAccount     string
	flagFilterCategory    string
	flagFilterCriticality string
	flagFilterStatus      string
	flagFilterPeriod      string
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List transactions matching the given fields",
	Long: `Filter lists transactions matching the given fields, case-insensitively.
Filtering by --account Josh or Anna includes half-amount copies of joint
transactions, so each individual sees their share of shared spending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd)
		if err != nil {
			return err
		}

		col := svc.Collection()
		if flagFilterCategory != "" {
			col = col.FilterByCategory(flagFilterCategory)
		}
		if flagFilterCriticality != "" {
			col = col.FilterByCriticality(flagFilterCriticality)
		}
		if flagFilterStatus != "" {
			col = col.FilterByStatus(flagFilterStatus)
		}
		if flagFilterPeriod != "" {
			col = col.FilterByStatementPeriod(flagFilterPeriod)
		}
		if flagFilterAccount != "" {
			col = col.FilterByAccount(flagFilterAccount)
		}

		printCollection(col)
		return nil
	},
}

func init() {
	filterCmd.Flags().StringVar(&flagFilterAccount, "account", "", "account to attribute transactions to")
	filterCmd.Flags().StringVar(&flagFilterCategory, "category", "", "category label")
	filterCmd.Flags().StringVar(&flagFilterCriticality, "criticality", "", "Essential or NonEssential")
	filterCmd.Flags().StringVar(&flagFilterStatus, "status", "", "transaction status")
	filterCmd.Flags().StringVar(&flagFilterPeriod, "period", "", "statement-period label")
}

func printCollection(col *collection.Collection) {
	for _, tx := range col.Transactions() {
		fmt.Printf("%-32s %10.2f  %-16s %-14s %-8s %s\n",
			tx.Name, tx.Amount, tx.Category, tx.Criticality, tx.Account, tx.TransactionDate)
	}
	fmt.Printf("%d transaction(s), total $%.2f\n", col.Count(), col.TotalAmount())
}
