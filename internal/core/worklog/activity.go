package worklog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Activity is an ordered collection of stints plus descriptive metadata.
// Construction normalizes the stint order; at most the chronologically last
// stint may be open.
type Activity struct {
	Description string  `json:"description"`
	Issue       string  `json:"issue"`
	Stints      []Stint `json:"stints"`
}

// NewActivity builds an activity, sorting the supplied stints by begin time.
// An open stint anywhere but the last position fails with
// ErrIntermittentStint.
func NewActivity(description, issue string, stints []Stint) (Activity, error) {
	sorted := make([]Stint, len(stints))
	copy(sorted, stints)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	for i, stint := range sorted {
		if !stint.IsFinished() && i != len(sorted)-1 {
			return Activity{}, ErrIntermittentStint{Begin: stint.Begin}
		}
	}

	return Activity{Description: description, Issue: issue, Stints: sorted}, nil
}

// UnmarshalJSON decodes an activity and applies the same normalization as
// NewActivity.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw struct {
		Description string  `json:"description"`
		Issue       string  `json:"issue"`
		Stints      []Stint `json:"stints"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	activity, err := NewActivity(raw.Description, raw.Issue, raw.Stints)
	if err != nil {
		return err
	}
	*a = activity
	return nil
}

// Current returns the chronologically last stint, or nil if there are none.
func (a Activity) Current() *Stint {
	if len(a.Stints) == 0 {
		return nil
	}
	return &a.Stints[len(a.Stints)-1]
}

// IsRunning reports whether the current stint exists and is open.
func (a Activity) IsRunning() bool {
	current := a.Current()
	return current != nil && !current.IsFinished()
}

// Started returns a copy of the activity with a new open stint appended.
// Fails with ErrAlreadyStarted if the current stint is still open.
func (a Activity) Started(at time.Time) (Activity, error) {
	if current := a.Current(); current != nil && !current.IsFinished() {
		return a, ErrAlreadyStarted{TimeLastStarted: current.Begin}
	}
	stints := make([]Stint, len(a.Stints), len(a.Stints)+1)
	copy(stints, a.Stints)
	return Activity{
		Description: a.Description,
		Issue:       a.Issue,
		Stints:      append(stints, NewStint(at)),
	}, nil
}

// Stopped returns a copy of the activity with the current stint closed at
// the given time. Fails with ErrNeverStarted if there are no stints, or
// ErrAlreadyStopped if the current stint is already closed.
func (a Activity) Stopped(at time.Time) (Activity, error) {
	current := a.Current()
	if current == nil {
		return a, ErrNeverStarted{}
	}
	finished, err := current.Finished(at)
	if err != nil {
		return a, err
	}
	stints := make([]Stint, len(a.Stints))
	copy(stints, a.Stints)
	stints[len(stints)-1] = finished
	return Activity{Description: a.Description, Issue: a.Issue, Stints: stints}, nil
}

// Canceled returns a copy of the activity with the current open stint
// discarded. When that stint was the only one, the result is nil, meaning
// the whole activity should be removed. The failure modes match Stopped.
func (a Activity) Canceled() (*Activity, error) {
	current := a.Current()
	if current == nil {
		return &a, ErrNeverStarted{}
	}
	if current.IsFinished() {
		return &a, ErrAlreadyStopped{TimeLastStopped: *current.End}
	}
	if len(a.Stints) == 1 {
		return nil, nil
	}
	stints := make([]Stint, len(a.Stints)-1)
	copy(stints, a.Stints[:len(a.Stints)-1])
	return &Activity{Description: a.Description, Issue: a.Issue, Stints: stints}, nil
}

// SecondsTotal sums the duration of all stints, counting an open stint up
// to the current time.
func (a Activity) SecondsTotal() int {
	total := 0
	for _, stint := range a.Stints {
		total += stint.Seconds()
	}
	return total
}

// SecondsUnpublished sums the duration of all unpublished stints.
func (a Activity) SecondsUnpublished() int {
	total := 0
	for _, stint := range a.Stints {
		if !stint.IsPublished {
			total += stint.Seconds()
		}
	}
	return total
}

// Equal compares activities by value.
func (a Activity) Equal(other Activity) bool {
	if a.Description != other.Description || a.Issue != other.Issue {
		return false
	}
	if len(a.Stints) != len(other.Stints) {
		return false
	}
	for i := range a.Stints {
		if !a.Stints[i].Equal(other.Stints[i]) {
			return false
		}
	}
	return true
}

func (a Activity) String() string {
	lines := make([]string, 0, len(a.Stints)+2)
	lines = append(lines, fmt.Sprintf("%s (%s)", a.Description, a.Issue))
	for _, stint := range a.Stints {
		lines = append(lines, stint.String())
	}
	return strings.Join(lines, "\n")
}

// Verify converts an absent activity into ErrActivityNotFound. Commands
// that look up a possibly-absent activity by name use it to fail clearly
// instead of propagating a nil.
func Verify(maybe *Activity) (Activity, error) {
	if maybe == nil {
		return Activity{}, ErrActivityNotFound{}
	}
	return *maybe, nil
}
