package worklog

import (
	"fmt"
	"strings"
	"time"
)

// ErrAlreadyStarted is returned when starting an activity whose current
// stint is still open.
type ErrAlreadyStarted struct {
	TimeLastStarted time.Time
}

func (e ErrAlreadyStarted) Error() string {
	return fmt.Sprintf("cannot start the activity because it has already been started at %s", e.TimeLastStarted.Format(time.RFC3339))
}

// ErrAlreadyStopped is returned when stopping or finishing an activity
// whose current stint is already closed.
type ErrAlreadyStopped struct {
	TimeLastStopped time.Time
}

func (e ErrAlreadyStopped) Error() string {
	return fmt.Sprintf("cannot stop the activity because it has already been stopped at %s", e.TimeLastStopped.Format(time.RFC3339))
}

// ErrNeverStarted is returned when stopping or canceling an activity that
// has no stints at all.
type ErrNeverStarted struct{}

func (ErrNeverStarted) Error() string {
	return "cannot stop an activity that has never been started"
}

// ErrNotFinished is returned when publishing an open stint.
type ErrNotFinished struct{}

func (ErrNotFinished) Error() string {
	return "cannot operate on an unfinished stint"
}

// ErrIntermittentStint is returned when an activity is constructed with an
// open stint anywhere but the chronologically last position. This is a data
// integrity violation, not a user error.
type ErrIntermittentStint struct {
	Begin time.Time
}

func (e ErrIntermittentStint) Error() string {
	return fmt.Sprintf("activity contains a running stint (begun at %s) that is not its last", e.Begin.Format(time.RFC3339))
}

// ErrActivityNotFound is returned by Verify when a command requires an
// activity that does not exist in the worklog.
type ErrActivityNotFound struct{}

func (ErrActivityNotFound) Error() string {
	return "the activity does not exist in the worklog"
}

// ErrActivityUpdate wraps a failure raised by an UpdateActivity callback,
// naming the activity it was applied to.
type ErrActivityUpdate struct {
	Name  string
	Cause error
}

func (e ErrActivityUpdate) Error() string {
	return fmt.Sprintf("failed to update activity %q", e.Name)
}

func (e ErrActivityUpdate) Unwrap() error {
	return e.Cause
}

// ErrAmbiguousRunning is returned when a command expects a single running
// activity but more than one is open.
type ErrAmbiguousRunning struct {
	Names []string
}

func (e ErrAmbiguousRunning) Error() string {
	return fmt.Sprintf("multiple activities are currently running: %s", strings.Join(e.Names, ", "))
}

// ErrWorklogDecode wraps a failure to parse a persisted worklog document.
type ErrWorklogDecode struct {
	Cause error
}

func (e ErrWorklogDecode) Error() string {
	return "failed to deserialize the worklog file"
}

func (e ErrWorklogDecode) Unwrap() error {
	return e.Cause
}
