// Package worklog contains the pure state machine for activities and their
// stints. All operations are value-returning: they never mutate the receiver,
// which is what lets the filesystem store detect changes by comparing
// snapshots.
package worklog

import (
	"fmt"
	"time"
)

// Stint is one contiguous span of work. A nil End means the stint is still
// running. Values are immutable; transitions return new values.
type Stint struct {
	Begin       time.Time  `json:"begin"`
	End         *time.Time `json:"end"`
	IsPublished bool       `json:"is_published"`
}

// NewStint returns an open stint beginning at the given time.
func NewStint(begin time.Time) Stint {
	return Stint{Begin: begin}
}

// IsFinished reports whether the stint has an end time.
func (s Stint) IsFinished() bool {
	return s.End != nil
}

// Finished returns a copy of the stint closed at the given time. Finishing
// an already finished stint fails with ErrAlreadyStopped carrying the
// original end time.
func (s Stint) Finished(at time.Time) (Stint, error) {
	if s.End != nil {
		return s, ErrAlreadyStopped{TimeLastStopped: *s.End}
	}
	end := at
	s.End = &end
	return s, nil
}

// Published returns a copy of the stint marked as published. Publishing an
// open stint fails with ErrNotFinished. Publishing an already published
// stint is a no-op.
func (s Stint) Published() (Stint, error) {
	if s.End == nil {
		return s, ErrNotFinished{}
	}
	if s.IsPublished {
		return s, nil
	}
	s.IsPublished = true
	return s, nil
}

// Seconds returns the whole seconds covered by the stint. For an open stint
// the duration is computed against the current time on every call; callers
// that need a stable value must finish the stint first.
func (s Stint) Seconds() int {
	if s.End != nil {
		return int(s.End.Sub(s.Begin).Seconds())
	}
	return int(time.Since(s.Begin).Seconds())
}

// Before orders stints by begin time.
func (s Stint) Before(other Stint) bool {
	return s.Begin.Before(other.Begin)
}

// Equal compares stints by value. Timestamps compare by instant, so a stint
// that round-tripped through JSON equals the one it was encoded from.
func (s Stint) Equal(other Stint) bool {
	if !s.Begin.Equal(other.Begin) {
		return false
	}
	if (s.End == nil) != (other.End == nil) {
		return false
	}
	if s.End != nil && !s.End.Equal(*other.End) {
		return false
	}
	return s.IsPublished == other.IsPublished
}

func (s Stint) String() string {
	end := "now"
	if s.End != nil {
		end = s.End.Format(time.RFC3339)
	}
	return fmt.Sprintf("%s - %s", s.Begin.Format(time.RFC3339), end)
}
