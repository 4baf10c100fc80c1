package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/wire"
)

// CancelCmd returns the cancel command
func CancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel [activity]",
		Short: "Discard the current stint without recording it",
		Long: `Throw away the open stint of a running activity. If no other stints were
recorded the whole activity is removed again.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: activityNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			result, err := tracker.Cancel(cmd.Context(), name)
			if err != nil {
				return err
			}

			if result.Deleted {
				fmt.Printf("Canceled %s; the activity had no other stints and was removed.\n", result.Name)
			} else {
				fmt.Printf("Canceled the current stint of %s.\n", result.Name)
			}
			return nil
		},
	}

	return cmd
}
