package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Merge transactions from another budget CSV into the current file",
	Long: `Import reads rows from the given CSV and merges them into the loaded
budget. Rows whose status is "active" become projected expenses instead of
transactions. Malformed rows are skipped individually; the rest of the
import proceeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd)
		if err != nil {
			return err
		}

		added, skipped, err := svc.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("imported %d records from %s", added, args[0])
		if skipped > 0 {
			fmt.Printf(" (%d malformed rows skipped)", skipped)
		}
		fmt.Println()
		return nil
	},
}
