package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/timeutil"
	"github.com/example/track/internal/wire"
)

// SwitchCmd returns the switch command
func SwitchCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "switch <activity>",
		Short: "Stop everything and start the named activity",
		Long: `Stop every running activity, then start the named one at the same moment.
Switching away from more than one running activity asks for confirmation.`,
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
			when, err := parseAt(at)
			if err != nil {
				return err
			}

			result, err := tracker.Switch(cmd.Context(), args[0], when,
				func(names []string) bool {
					return confirm(fmt.Sprintf("Stop all of %s?", strings.Join(names, ", ")))
				},
				activityFactory(directory))
			if err != nil {
				return err
			}

			for _, stopped := range result.Stopped {
				fmt.Printf("Stopped %s.\n", stopped.Name)
			}
			fmt.Printf("Started %s at %s.\n",
				result.Started.Name, timeutil.ShortTime(result.Started.At))
			return nil
		},
	}

	atFlag(cmd, &at)
	return cmd
}
