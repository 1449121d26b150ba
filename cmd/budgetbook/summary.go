package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"budgetbook/internal/breakdown"
	"budgetbook/internal/core"
)

var flagActualsOnly bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the person/criticality/category spending breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd)
		if err != nil {
			return err
		}

		b := svc.Summary(flagActualsOnly)
		printBreakdown(b)

		if err := ws.SetLastView(cmd.Context(), "summary"); err != nil {
			logger.Warn("Could not record last view", "error", err)
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&flagActualsOnly, "actuals-only", false,
		"exclude projected expenses from the breakdown")
}

func printBreakdown(b *breakdown.Breakdown) {
	grouped := b.Grouped()
	for _, person := range core.Persons {
		fmt.Printf("%s  (total $%.2f)\n", person, b.PersonTotal(person))
		for _, criticality := range core.Criticalities {
			fmt.Printf("  %s  $%.2f\n", criticality, b.CriticalityTotal(person, criticality))

			categories := grouped[person][criticality]
			names := make([]string, 0, len(categories))
			for name := range categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("    %-24s $%.2f\n", name, categories[name])
			}
		}
		fmt.Println()
	}
}
