package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/render"
	"github.com/example/track/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var (
		today     bool
		thisWeek  bool
		thisMonth bool
		thisYear  bool
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recorded stints",
		Long: `Print the stint log as a table, one row per stint. The default range is
the current week; pick another with --today, --this-month, --this-year or
--all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}

			log, err := tracker.Snapshot(cmd.Context())
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					fmt.Println("The worklog is empty.")
					return nil
				}
				return err
			}

			now := time.Now()
			var cutoff time.Time
			switch {
			case all:
			case today:
				cutoff = startOfDay(now)
			case thisMonth:
				cutoff = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			case thisYear:
				cutoff = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
			case thisWeek:
				cutoff = startOfWeek(now)
			default:
				cutoff = startOfWeek(now)
			}

			records := make([]worklog.Record, 0)
			for _, r := range log.Records() {
				if r.Stint.Begin.Before(cutoff) {
					continue
				}
				records = append(records, r)
			}
			if len(records) == 0 {
				fmt.Println("No stints in the selected range.")
				return nil
			}

			fmt.Println(render.LogTable(records, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&today, "today", false, "list today's stints")
	cmd.Flags().BoolVar(&thisWeek, "this-week", false, "list this week's stints (default)")
	cmd.Flags().BoolVar(&thisMonth, "this-month", false, "list this month's stints")
	cmd.Flags().BoolVar(&thisYear, "this-year", false, "list this year's stints")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every recorded stint")
	cmd.MarkFlagsMutuallyExclusive("today", "this-week", "this-month", "this-year", "all")
	return cmd
}

// startOfDay returns midnight of t's day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -offset)
}
