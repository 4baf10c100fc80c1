package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/adapters/jira"
	"github.com/example/track/internal/config"
	"github.com/example/track/internal/wire"
)

// ReconfigureCmd returns the reconfigure command
func ReconfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconfigure",
		Short: "Create or update the configuration interactively",
		Long: `Ask for the issue tracker connection settings and write config.json.
Existing values are offered as defaults. The epic link field is resolved
against the tracker's field catalog when it can be reached.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := wire.ConfigDir()
			if err != nil {
				return err
			}

			cfg, err := config.Load(dir)
			if err != nil {
				cfg = &config.Config{}
			}

			cfg.Host = prompt("Tracker base URL", cfg.Host)
			cfg.Token = prompt("Access token", cfg.Token)
			cfg.DefaultGroup = prompt("Worklog visibility group (empty for none)", cfg.DefaultGroup)
			cfg.StoreDir = prompt("Data directory (empty for the config directory)", cfg.StoreDir)
			cfg.Editor = prompt("Editor (empty for $EDITOR)", cfg.Editor)

			if field := resolveEpicLinkField(cmd, cfg); field != "" {
				cfg.EpicLinkField = field
			}

			if err := config.Save(dir, cfg); err != nil {
				return err
			}

			fmt.Printf("Configuration written to %s.\n", dir)
			return nil
		},
	}

	return cmd
}

// resolveEpicLinkField looks up the custom field named "Epic Link" in the
// tracker's field catalog. Failures fall back to whatever is configured.
func resolveEpicLinkField(cmd *cobra.Command, cfg *config.Config) string {
	client := jira.NewClient(jira.Options{Host: cfg.Host, Token: cfg.Token}, nil)

	ctx, cancel := jira.LookupContext(cmd.Context())
	defer cancel()

	fields, err := client.GetFields(ctx)
	if err != nil {
		fmt.Printf("could not fetch the field catalog: %v\n", err)
		return prompt("Epic link field id", cfg.EpicLinkField)
	}

	if id, ok := fields["Epic Link"]; ok {
		return id
	}
	return prompt("Epic link field id", cfg.EpicLinkField)
}
