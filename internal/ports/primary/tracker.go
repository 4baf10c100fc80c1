// Package primary defines the primary ports (driving interfaces) for the
// application. The CLI talks to the application exclusively through these.
package primary

import (
	"context"
	"time"

	"github.com/example/track/internal/core/worklog"
)

// ActivityFactory builds a fresh activity for a name that does not exist in
// the worklog yet. The CLI wires its interactive wizard in here; tests wire
// a canned value.
type ActivityFactory func(ctx context.Context, name string) (worklog.Activity, error)

// StartResult reports a successful start.
type StartResult struct {
	Name     string
	Activity worklog.Activity
	At       time.Time
}

// StopResult reports a successful stop.
type StopResult struct {
	Name               string
	Activity           worklog.Activity
	At                 time.Time
	SecondsUnpublished int
}

// CancelResult reports a successful cancellation. Deleted is true when the
// canceled stint was the activity's only one and the whole activity was
// removed.
type CancelResult struct {
	Name     string
	Activity *worklog.Activity
	Deleted  bool
}

// SwitchResult reports a switch: every previously running activity stopped,
// then the target started.
type SwitchResult struct {
	Stopped []StopResult
	Started StartResult
}

// StatusReport aggregates everything the status command displays.
type StatusReport struct {
	Running      []worklog.RunningActivity
	Unpublished  []worklog.ActivitySummary
	All          []worklog.ActivitySummary
	TotalSeconds int
}

// TrackerService drives the worklog state machine. An empty name on Stop
// and Cancel means "the single running activity".
type TrackerService interface {
	// Start creates or resumes an activity. The factory runs only when the
	// activity does not exist yet.
	Start(ctx context.Context, name string, at time.Time, create ActivityFactory) (*StartResult, error)

	// Stop closes the current stint of a running activity.
	Stop(ctx context.Context, name string, at time.Time) (*StopResult, error)

	// Cancel discards the current open stint without recording it.
	Cancel(ctx context.Context, name string) (*CancelResult, error)

	// Switch stops all running activities and starts the target. confirm is
	// consulted before stopping more than one.
	Switch(ctx context.Context, name string, at time.Time, confirm func(names []string) bool, create ActivityFactory) (*SwitchResult, error)

	// Remove deletes an activity. confirm is consulted when the activity
	// still has unpublished stints.
	Remove(ctx context.Context, name string, confirm func(worklog.Activity) bool) error

	// Update applies an arbitrary transition to one activity inside a
	// transaction. The edit command uses it to install editor output.
	Update(ctx context.Context, name string, fn worklog.UpdateFunc) (*worklog.Activity, error)

	// Status summarizes the current worklog. A missing worklog file yields
	// an empty report, not an error.
	Status(ctx context.Context) (*StatusReport, error)

	// Snapshot reads the worklog without opening a transaction.
	Snapshot(ctx context.Context) (*worklog.Worklog, error)

	// Reset deletes the worklog file.
	Reset(ctx context.Context) error
}

// PublishService submits unpublished finished stints to the issue tracker.
type PublishService interface {
	// PublishActivity publishes one activity's stints. Per-stint failures
	// are aggregated; the worklog commits locally regardless.
	PublishActivity(ctx context.Context, name string) []error

	// PublishWorklog publishes every activity, concurrently.
	PublishWorklog(ctx context.Context) []error
}
