package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/timeutil"
	"github.com/example/track/internal/wire"
)

// StartCmd returns the start command
func StartCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "start <activity>",
		Short: "Start working on an activity",
		Long: `Start a new stint on the named activity. Unknown activities are created
interactively: you will be asked for the issue key and a description, with
the issue summary suggested as the default.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: activityNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}
			directory, err := wire.IssueDirectory()
			if err != nil {
				return err
			}
			begin, err := parseAt(at)
			if err != nil {
				return err
			}

			result, err := tracker.Start(cmd.Context(), args[0], begin, activityFactory(directory))
			if err != nil {
				return err
			}

			fmt.Printf("Started %s at %s.\n", result.Name, timeutil.ShortTime(result.At))
			return nil
		},
	}

	atFlag(cmd, &at)
	return cmd
}
