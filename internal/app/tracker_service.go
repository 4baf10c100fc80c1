// Package app implements the application services behind the primary ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/track/internal/adapters/filesystem"
	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/ports/primary"
)

// TrackerServiceImpl implements primary.TrackerService on top of the
// filesystem store.
type TrackerServiceImpl struct {
	worklogPath string
}

var _ primary.TrackerService = (*TrackerServiceImpl)(nil)

// NewTrackerService creates a TrackerService persisting to the given path.
func NewTrackerService(worklogPath string) *TrackerServiceImpl {
	return &TrackerServiceImpl{worklogPath: worklogPath}
}

// Start creates or resumes an activity.
func (s *TrackerServiceImpl) Start(ctx context.Context, name string, at time.Time, create primary.ActivityFactory) (*primary.StartResult, error) {
	var result *primary.StartResult

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		started, err := log.UpdateActivityContext(ctx, name, func(ctx context.Context, a *worklog.Activity) (*worklog.Activity, error) {
			activity, err := s.ensure(ctx, name, a, create)
			if err != nil {
				return nil, err
			}
			next, err := activity.Started(at)
			if err != nil {
				return nil, err
			}
			return &next, nil
		})
		if err != nil {
			return err
		}
		result = &primary.StartResult{Name: name, Activity: *started, At: at}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Stop closes the current stint. An empty name resolves to the single
// running activity.
func (s *TrackerServiceImpl) Stop(ctx context.Context, name string, at time.Time) (*primary.StopResult, error) {
	var result *primary.StopResult

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		resolved, err := s.resolveRunning(log, name)
		if err != nil {
			return err
		}
		stopped, err := log.UpdateActivity(resolved, func(a *worklog.Activity) (*worklog.Activity, error) {
			activity, err := worklog.Verify(a)
			if err != nil {
				return nil, err
			}
			next, err := activity.Stopped(at)
			if err != nil {
				return nil, err
			}
			return &next, nil
		})
		if err != nil {
			return err
		}
		result = &primary.StopResult{
			Name:               resolved,
			Activity:           *stopped,
			At:                 at,
			SecondsUnpublished: stopped.SecondsUnpublished(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel discards the current open stint.
func (s *TrackerServiceImpl) Cancel(ctx context.Context, name string) (*primary.CancelResult, error) {
	var result *primary.CancelResult

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		resolved, err := s.resolveRunning(log, name)
		if err != nil {
			return err
		}
		canceled, err := log.UpdateActivity(resolved, func(a *worklog.Activity) (*worklog.Activity, error) {
			activity, err := worklog.Verify(a)
			if err != nil {
				return nil, err
			}
			return activity.Canceled()
		})
		if err != nil {
			return err
		}
		result = &primary.CancelResult{Name: resolved, Activity: canceled, Deleted: canceled == nil}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Switch stops everything that is running, then starts the target.
func (s *TrackerServiceImpl) Switch(ctx context.Context, name string, at time.Time, confirm func([]string) bool, create primary.ActivityFactory) (*primary.SwitchResult, error) {
	var result *primary.SwitchResult

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		running := log.RunningActivities()
		if len(running) > 1 {
			names := make([]string, len(running))
			for i, r := range running {
				names[i] = r.Name
			}
			if confirm == nil || !confirm(names) {
				return fmt.Errorf("switch aborted")
			}
		}

		var stopped []primary.StopResult
		for _, r := range running {
			activity, err := log.UpdateActivity(r.Name, func(a *worklog.Activity) (*worklog.Activity, error) {
				current, err := worklog.Verify(a)
				if err != nil {
					return nil, err
				}
				next, err := current.Stopped(at)
				if err != nil {
					return nil, err
				}
				return &next, nil
			})
			if err != nil {
				return err
			}
			stopped = append(stopped, primary.StopResult{
				Name:               r.Name,
				Activity:           *activity,
				At:                 at,
				SecondsUnpublished: activity.SecondsUnpublished(),
			})
		}

		started, err := log.UpdateActivityContext(ctx, name, func(ctx context.Context, a *worklog.Activity) (*worklog.Activity, error) {
			activity, err := s.ensure(ctx, name, a, create)
			if err != nil {
				return nil, err
			}
			next, err := activity.Started(at)
			if err != nil {
				return nil, err
			}
			return &next, nil
		})
		if err != nil {
			return err
		}

		result = &primary.SwitchResult{
			Stopped: stopped,
			Started: primary.StartResult{Name: name, Activity: *started, At: at},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes an activity from the worklog.
func (s *TrackerServiceImpl) Remove(ctx context.Context, name string, confirm func(worklog.Activity) bool) error {
	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		_, err := log.UpdateActivity(name, func(a *worklog.Activity) (*worklog.Activity, error) {
			activity, err := worklog.Verify(a)
			if err != nil {
				return nil, err
			}
			if activity.SecondsUnpublished() > 0 && confirm != nil && !confirm(activity) {
				return a, nil
			}
			return nil, nil
		})
		return err
	})
	return err
}

// Update applies an arbitrary transition to one activity.
func (s *TrackerServiceImpl) Update(ctx context.Context, name string, fn worklog.UpdateFunc) (*worklog.Activity, error) {
	var result *worklog.Activity

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		updated, err := log.UpdateActivity(name, fn)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Status summarizes the worklog. A missing file reads as empty.
func (s *TrackerServiceImpl) Status(ctx context.Context) (*primary.StatusReport, error) {
	log, err := filesystem.ReadFromFile(s.worklogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log = worklog.New()
		} else {
			return nil, err
		}
	}

	report := &primary.StatusReport{
		Running: log.RunningActivities(),
		All:     log.SummarizeActivities(),
	}
	for _, summary := range report.All {
		report.TotalSeconds += summary.SecondsTotal
		if summary.SecondsUnpublished > 0 {
			report.Unpublished = append(report.Unpublished, summary)
		}
	}
	return report, nil
}

// Snapshot reads the worklog without a transaction.
func (s *TrackerServiceImpl) Snapshot(ctx context.Context) (*worklog.Worklog, error) {
	return filesystem.ReadFromFile(s.worklogPath)
}

// Reset deletes the worklog file.
func (s *TrackerServiceImpl) Reset(ctx context.Context) error {
	if err := os.Remove(s.worklogPath); err != nil {
		return fmt.Errorf("failed to delete worklog: %w", err)
	}
	return nil
}

// ensure resolves the optional activity from an update callback, falling
// back to the factory for names not in the worklog yet.
func (s *TrackerServiceImpl) ensure(ctx context.Context, name string, a *worklog.Activity, create primary.ActivityFactory) (worklog.Activity, error) {
	if a != nil {
		return *a, nil
	}
	if create == nil {
		return worklog.Verify(nil)
	}
	return create(ctx, name)
}

// resolveRunning maps an empty name to the single running activity.
func (s *TrackerServiceImpl) resolveRunning(log *worklog.Worklog, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	resolved, ok, err := log.SingleRunningActivity()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNothingRunning{}
	}
	return resolved, nil
}

// ErrNothingRunning is returned when a command that defaults to "the"
// running activity finds none.
type ErrNothingRunning struct{}

func (ErrNothingRunning) Error() string {
	return "no activities are currently running"
}
