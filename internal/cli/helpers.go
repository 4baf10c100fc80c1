// Package cli implements the track commands. Each command constructor
// returns a cobra command wired against the application services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/track/internal/adapters/jira"
	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/ports/primary"
	"github.com/example/track/internal/ports/secondary"
	"github.com/example/track/internal/timeutil"
	"github.com/example/track/internal/wire"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold)
	causeLabel  = color.New(color.FgRed)
	promptStyle = color.New(color.FgCyan)
)

// ReportError prints an error and its cause chain to stderr.
func ReportError(err error) {
	errorLabel.Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)
	for err = errors.Unwrap(err); err != nil; err = errors.Unwrap(err) {
		causeLabel.Fprint(os.Stderr, "caused by: ")
		fmt.Fprintln(os.Stderr, err)
	}
}

// confirm asks a yes/no question on the terminal. Only an explicit
// y/yes answer counts as consent.
func confirm(question string) bool {
	promptStyle.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// prompt reads one line of input, returning fallback for an empty answer.
func prompt(question, fallback string) string {
	if fallback != "" {
		promptStyle.Printf("%s [%s]: ", question, fallback)
	} else {
		promptStyle.Printf("%s: ", question)
	}
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fallback
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fallback
	}
	return answer
}

// activityFactory builds the interactive wizard that creates a new
// activity from an issue key, consulting the issue directory for the
// summary and the epic suggestion.
func activityFactory(directory secondary.IssueDirectory) primary.ActivityFactory {
	return func(ctx context.Context, name string) (worklog.Activity, error) {
		fmt.Printf("%q is not in the worklog yet.\n", name)

		issue := prompt("Issue key", "")
		description := ""
		if issue != "" && directory != nil {
			lookupCtx, cancel := jira.LookupContext(ctx)
			info, err := directory.GetIssue(lookupCtx, issue)
			cancel()
			if err != nil {
				fmt.Printf("could not look up %s: %v\n", issue, err)
			} else {
				description = info.Summary
				if info.EpicKey != "" && confirm(fmt.Sprintf("Log against epic %s instead of %s?", info.EpicKey, issue)) {
					issue = info.EpicKey
				}
			}
		}

		description = prompt("Description", description)
		return worklog.Activity{Description: description, Issue: issue}, nil
	}
}

// activityNames completes activity name arguments from the worklog.
func activityNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	tracker, err := wire.TrackerService()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	log, err := tracker.Snapshot(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := make([]string, 0)
	for _, summary := range log.SummarizeActivities() {
		if strings.HasPrefix(summary.Name, toComplete) {
			names = append(names, fmt.Sprintf("%s\t%s", summary.Name, summary.Description))
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// atFlag registers the shared --time flag on a command.
func atFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVarP(value, "time", "t", "",
		"effective time: an offset like -15m, a clock time like 18:45, or a full timestamp")
}

// parseAt resolves the --time flag against the current moment.
func parseAt(value string) (time.Time, error) {
	return timeutil.ParseTimeFlag(value, time.Now())
}
