package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/timeutil"
	"github.com/example/track/internal/wire"
)

// RemoveCmd returns the remove command
func RemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <activity>",
		Short: "Delete an activity from the worklog",
		Long: `Remove the named activity and every stint it recorded. Removal asks for
confirmation when unpublished work would be lost.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: activityNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}

			declined := false
			err = tracker.Remove(cmd.Context(), args[0], func(activity worklog.Activity) bool {
				if force {
					return true
				}
				ok := confirm(fmt.Sprintf("%q still has %s of unpublished work. Remove anyway?",
					args[0], timeutil.WorkDuration(activity.SecondsUnpublished(), false)))
				declined = !ok
				return ok
			})
			if err != nil {
				return err
			}

			if declined {
				fmt.Printf("Kept %s.\n", args[0])
				return nil
			}
			fmt.Printf("Removed %s.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "remove without confirmation")
	return cmd
}
