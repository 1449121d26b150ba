package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"budgetbook/internal/workspace"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List known statement periods and their archive files",
	RunE: func(cmd *cobra.Command, args []string) error {
		periods, err := ws.StatementPeriods(cmd.Context())
		if err != nil {
			return err
		}
		if len(periods) == 0 {
			fmt.Println("no statement periods recorded yet")
			return nil
		}
		for _, period := range periods {
			archive, err := ws.ArchiveFile(cmd.Context(), period)
			switch {
			case errors.Is(err, workspace.ErrNotFound):
				fmt.Printf("%s\n", period)
			case err != nil:
				return err
			default:
				fmt.Printf("%s -> %s\n", period, archive)
			}
		}
		return nil
	},
}
