package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/timeutil"
	"github.com/example/track/internal/wire"
)

// StopCmd returns the stop command
func StopCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "stop [activity]",
		Short: "Stop the running activity",
		Long: `Close the current stint. Without an argument the single running activity
is stopped; with several activities running the name must be given.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: activityNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}
			end, err := parseAt(at)
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			result, err := tracker.Stop(cmd.Context(), name, end)
			if err != nil {
				return err
			}

			fmt.Printf("Stopped %s at %s. Unpublished work: %s.\n",
				result.Name,
				timeutil.ShortTime(result.At),
				timeutil.WorkDuration(result.SecondsUnpublished, false))
			return nil
		},
	}

	atFlag(cmd, &at)
	return cmd
}
