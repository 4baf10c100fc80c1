package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/wire"
)

// EditCmd returns the edit command
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <activity>",
		Short: "Edit an activity in your editor",
		Long: `Open the activity as JSON in your editor. The edited version replaces the
activity when the editor exits; invalid JSON or invalid stints abort the
edit and leave the worklog untouched. An emptied buffer deletes the
activity after confirmation.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: activityNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := wire.TrackerService()
			if err != nil {
				return err
			}
			cfg, err := wire.Config()
			if err != nil {
				return err
			}

			deleted := false
			_, err = tracker.Update(cmd.Context(), args[0], func(a *worklog.Activity) (*worklog.Activity, error) {
				current, err := worklog.Verify(a)
				if err != nil {
					return nil, err
				}
				edited, err := editActivity(cfg.EditorCommand(), current)
				if err != nil {
					return nil, err
				}
				if edited == nil {
					if !confirm(fmt.Sprintf("The buffer is empty. Delete %q?", args[0])) {
						return a, nil
					}
					deleted = true
				}
				return edited, nil
			})
			if err != nil {
				return err
			}

			if deleted {
				fmt.Printf("Deleted %s.\n", args[0])
				return nil
			}
			fmt.Printf("Updated %s.\n", args[0])
			return nil
		},
	}

	return cmd
}

// editActivity round-trips an activity through the editor.
func editActivity(editor string, activity worklog.Activity) (*worklog.Activity, error) {
	file, err := os.CreateTemp("", "track-edit-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create edit file: %w", err)
	}
	defer os.Remove(file.Name())

	data, err := json.MarshalIndent(activity, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write edit file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close edit file: %w", err)
	}

	editCmd := exec.Command(editor, file.Name())
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(file.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read edit file: %w", err)
	}
	if len(bytes.TrimSpace(edited)) == 0 {
		return nil, nil
	}

	var result worklog.Activity
	if err := json.Unmarshal(edited, &result); err != nil {
		return nil, fmt.Errorf("the edited activity is invalid: %w", err)
	}
	return &result, nil
}
