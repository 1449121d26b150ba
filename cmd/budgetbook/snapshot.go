package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagSnapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write a hashed backup snapshot of the current budget state",
	Long: `Snapshot serializes the loaded transactions, projections, and workspace
state into a JSON document with a SHA-256 hash per section, suitable for
handing to a backup or sync layer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadService(cmd)
		if err != nil {
			return err
		}

		snap, err := svc.Snapshot(cmd.Context())
		if err != nil {
			return err
		}
		data, err := snap.Encode()
		if err != nil {
			return err
		}

		if flagSnapshotOut == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(flagSnapshotOut, data, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Printf("snapshot written to %s\n", flagSnapshotOut)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&flagSnapshotOut, "out", "", "file to write the snapshot to (default stdout)")
}
