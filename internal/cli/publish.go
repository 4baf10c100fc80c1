package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/wire"
)

// PublishCmd returns the publish command
func PublishCmd() *cobra.Command {
	var activity string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish finished stints to the issue tracker",
		Long: `Submit every finished, not yet published stint as a worklog entry on its
activity's issue. By default the whole worklog is published; --activity
restricts the publish to one activity. Stints that fail to post stay
unpublished and are retried next time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			publisher, err := wire.PublishService()
			if err != nil {
				return err
			}

			var errs []error
			if activity != "" {
				errs = publisher.PublishActivity(cmd.Context(), activity)
			} else {
				errs = publisher.PublishWorklog(cmd.Context())
			}

			for _, err := range errs {
				ReportError(err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d stint(s) could not be published", len(errs))
			}

			fmt.Println("Published.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&activity, "activity", "a", "", "publish only this activity")
	_ = cmd.RegisterFlagCompletionFunc("activity", activityNames)
	return cmd
}
