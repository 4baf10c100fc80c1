package worklog

import (
	"context"
	"sort"
	"time"
)

// Worklog maps activity names to activities. It is the unit of persistence:
// the filesystem store reads and writes whole documents, and mutation goes
// through UpdateActivity only.
type Worklog struct {
	Activities map[string]Activity `json:"activities"`
}

// New returns an empty worklog.
func New() *Worklog {
	return &Worklog{Activities: map[string]Activity{}}
}

// UpdateFunc receives the current activity under a name (nil when absent)
// and returns its replacement. A nil result removes the name from the
// worklog.
type UpdateFunc func(*Activity) (*Activity, error)

// UpdateActivity applies fn to the activity stored under name and installs
// the result. Errors from fn are wrapped as ErrActivityUpdate naming the
// activity. The callback's result is returned so callers can report on it.
func (w *Worklog) UpdateActivity(name string, fn UpdateFunc) (*Activity, error) {
	return w.UpdateActivityContext(context.Background(), name, func(_ context.Context, a *Activity) (*Activity, error) {
		return fn(a)
	})
}

// UpdateContextFunc is an UpdateFunc that may block on external calls, such
// as publishing stints over HTTP.
type UpdateContextFunc func(context.Context, *Activity) (*Activity, error)

// UpdateActivityContext is UpdateActivity for callbacks that need a
// context. Exactly one read-modify-write cycle runs per call.
func (w *Worklog) UpdateActivityContext(ctx context.Context, name string, fn UpdateContextFunc) (*Activity, error) {
	var current *Activity
	if existing, ok := w.Activities[name]; ok {
		value := existing
		current = &value
	}

	updated, err := fn(ctx, current)
	if err != nil {
		return nil, ErrActivityUpdate{Name: name, Cause: err}
	}

	if w.Activities == nil {
		w.Activities = map[string]Activity{}
	}
	if updated == nil {
		delete(w.Activities, name)
	} else {
		w.Activities[name] = *updated
	}
	return updated, nil
}

// Record is one stint of one activity, flattened for reporting.
type Record struct {
	Title string
	Issue string
	Stint Stint
}

// Records flattens all activities' stints. The order is stable: activities
// by name, stints chronologically within each.
func (w *Worklog) Records() []Record {
	records := make([]Record, 0)
	for _, name := range w.sortedNames() {
		activity := w.Activities[name]
		for _, stint := range activity.Stints {
			records = append(records, Record{Title: name, Issue: activity.Issue, Stint: stint})
		}
	}
	return records
}

// ActivitySummary aggregates per-activity counters for status displays.
type ActivitySummary struct {
	Name               string
	Description        string
	Issue              string
	SecondsTotal       int
	SecondsUnpublished int
	StintsUnpublished  int
	LastWorkedOn       time.Time
	Running            bool
}

// Summarize builds the summary for a single named activity.
func Summarize(name string, activity Activity) ActivitySummary {
	summary := ActivitySummary{
		Name:        name,
		Description: activity.Description,
		Issue:       activity.Issue,
		Running:     activity.IsRunning(),
	}
	for _, stint := range activity.Stints {
		summary.SecondsTotal += stint.Seconds()
		if !stint.IsPublished {
			summary.SecondsUnpublished += stint.Seconds()
			summary.StintsUnpublished++
		}
		last := stint.Begin
		if stint.End != nil {
			last = *stint.End
		}
		if last.After(summary.LastWorkedOn) {
			summary.LastWorkedOn = last
		}
	}
	return summary
}

// SummarizeActivities returns summaries for all activities with at least
// one stint, ordered by name.
func (w *Worklog) SummarizeActivities() []ActivitySummary {
	summaries := make([]ActivitySummary, 0, len(w.Activities))
	for _, name := range w.sortedNames() {
		activity := w.Activities[name]
		if len(activity.Stints) == 0 {
			continue
		}
		summaries = append(summaries, Summarize(name, activity))
	}
	return summaries
}

// RunningActivity pairs an activity with its worklog name.
type RunningActivity struct {
	Name     string
	Activity Activity
}

// RunningActivities returns all activities whose current stint is open,
// ordered by name.
func (w *Worklog) RunningActivities() []RunningActivity {
	running := make([]RunningActivity, 0)
	for _, name := range w.sortedNames() {
		if activity := w.Activities[name]; activity.IsRunning() {
			running = append(running, RunningActivity{Name: name, Activity: activity})
		}
	}
	return running
}

// SingleRunningActivity returns the name of the only running activity.
// The bool is false when nothing is running; more than one running activity
// fails with ErrAmbiguousRunning listing the candidates.
func (w *Worklog) SingleRunningActivity() (string, bool, error) {
	running := w.RunningActivities()
	switch len(running) {
	case 0:
		return "", false, nil
	case 1:
		return running[0].Name, true, nil
	default:
		names := make([]string, len(running))
		for i, r := range running {
			names[i] = r.Name
		}
		return "", false, ErrAmbiguousRunning{Names: names}
	}
}

// Clone returns a deep copy of the worklog. The filesystem store snapshots
// the document on transaction entry to detect changes on exit.
func (w *Worklog) Clone() *Worklog {
	clone := New()
	for name, activity := range w.Activities {
		stints := make([]Stint, len(activity.Stints))
		copy(stints, activity.Stints)
		activity.Stints = stints
		clone.Activities[name] = activity
	}
	return clone
}

// Equal compares worklogs by value.
func (w *Worklog) Equal(other *Worklog) bool {
	if len(w.Activities) != len(other.Activities) {
		return false
	}
	for name, activity := range w.Activities {
		otherActivity, ok := other.Activities[name]
		if !ok || !activity.Equal(otherActivity) {
			return false
		}
	}
	return true
}

func (w *Worklog) sortedNames() []string {
	names := make([]string, 0, len(w.Activities))
	for name := range w.Activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
