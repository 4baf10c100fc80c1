package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/cli"
	"github.com/example/track/internal/version"
	"github.com/example/track/internal/wire"
)

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:     "track",
		Short:   "track - personal time tracking against an issue tracker",
		Version: version.String(),
		Long: `track records the time you spend on activities and publishes it as
worklog entries on the activities' issues. All data lives in a local JSON
worklog; nothing leaves your machine until you run track publish.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configDir != "" {
				wire.SetConfigDir(configDir)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.track)")

	// Add subcommands
	rootCmd.AddCommand(cli.StartCmd())
	rootCmd.AddCommand(cli.StopCmd())
	rootCmd.AddCommand(cli.CancelCmd())
	rootCmd.AddCommand(cli.SwitchCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.EditCmd())
	rootCmd.AddCommand(cli.RemoveCmd())
	rootCmd.AddCommand(cli.PublishCmd())
	rootCmd.AddCommand(cli.ResetCmd())
	rootCmd.AddCommand(cli.ReconfigureCmd())

	if err := rootCmd.Execute(); err != nil {
		cli.ReportError(err)
		os.Exit(1)
	}
}
