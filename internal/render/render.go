// Package render turns worklog data into the tables the CLI prints.
package render

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/ports/primary"
	"github.com/example/track/internal/timeutil"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	borderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	runningStyle     = cellStyle.Foreground(lipgloss.Color("#00FF00")).Bold(true)
	unpublishedStyle = cellStyle.Foreground(lipgloss.Color("#FFD93D"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

// LogTable renders the stint log: one row per stint, most recent day
// first within the record order the caller chose. Unpublished stints are
// highlighted, running stints marked as ongoing.
func LogTable(records []worklog.Record, now time.Time) string {
	t := newTable("Date", "Begin", "End", "Time", "Activity", "Issue")

	type rowKind int
	kinds := make([]rowKind, 0, len(records))
	const (
		kindPublished rowKind = iota
		kindUnpublished
		kindRunning
	)

	lastDate := ""
	for _, r := range records {
		date := timeutil.ShortDate(r.Stint.Begin, now)
		shown := date
		if date == lastDate {
			shown = ""
		}
		lastDate = date

		end := "ongoing"
		kind := kindRunning
		if r.Stint.IsFinished() {
			end = timeutil.ShortTime(*r.Stint.End)
			kind = kindUnpublished
			if r.Stint.IsPublished {
				kind = kindPublished
			}
		}
		kinds = append(kinds, kind)

		t.Row(shown,
			timeutil.ShortTime(r.Stint.Begin),
			end,
			timeutil.WorkDuration(r.Stint.Seconds(), false),
			r.Title,
			r.Issue)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle.Padding(0, 1)
		case kinds[row] == kindRunning:
			return runningStyle
		case kinds[row] == kindUnpublished:
			return unpublishedStyle
		default:
			return cellStyle
		}
	})

	return t.Render()
}

// SummaryTable renders one row per activity with its totals.
func SummaryTable(summaries []worklog.ActivitySummary, now time.Time) string {
	t := newTable("Activity", "Description", "Issue", "Total", "Unpublished", "Last worked on")

	running := make([]bool, 0, len(summaries))
	for _, s := range summaries {
		lastWorked := ""
		if !s.LastWorkedOn.IsZero() {
			lastWorked = fmt.Sprintf("%s %s",
				timeutil.ShortDate(s.LastWorkedOn, now),
				timeutil.ShortTime(s.LastWorkedOn))
		}
		running = append(running, s.Running)

		t.Row(s.Name,
			s.Description,
			s.Issue,
			timeutil.WorkDuration(s.SecondsTotal, false),
			timeutil.WorkDuration(s.SecondsUnpublished, false),
			lastWorked)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle.Padding(0, 1)
		case running[row]:
			return runningStyle
		default:
			return cellStyle
		}
	})

	return t.Render()
}

// StatusView renders the status command output: running activities, a
// summary table and the grand totals.
func StatusView(report *primary.StatusReport, now time.Time) string {
	out := ""

	if len(report.Running) == 0 {
		out += mutedStyle.Render("Nothing is running.") + "\n"
	}
	for _, r := range report.Running {
		stint := r.Activity.Current()
		out += fmt.Sprintf("%s %s (since %s, %s)\n",
			runningStyle.Padding(0).Render("▶ "+r.Name),
			mutedStyle.Render(r.Activity.Description),
			timeutil.ShortTime(stint.Begin),
			timeutil.WorkDuration(stint.Seconds(), false))
	}

	if len(report.All) > 0 {
		out += "\n" + SummaryTable(report.All, now) + "\n"
	}

	unpublished := 0
	for _, s := range report.Unpublished {
		unpublished += s.SecondsUnpublished
	}
	out += fmt.Sprintf("\nTotal: %s", timeutil.WorkDuration(report.TotalSeconds, false))
	if unpublished > 0 {
		out += unpublishedStyle.Padding(0).Render(
			fmt.Sprintf("  (unpublished: %s)", timeutil.WorkDuration(unpublished, false)))
	}
	out += "\n"

	return out
}
