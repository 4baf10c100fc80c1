package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/render"
	"github.com/example/track/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show running activities and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}

			report, err := tracker.Status(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Print(render.StatusView(report, time.Now()))
			return nil
		},
	}

	return cmd
}
