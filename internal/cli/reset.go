package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/wire"
)

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the whole worklog",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}

			if !force && !confirm("Delete the whole worklog? This cannot be undone.") {
				fmt.Println("Kept the worklog.")
				return nil
			}

			if err := tracker.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("The worklog was deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reset without confirmation")
	return cmd
}
