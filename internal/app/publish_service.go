package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/track/internal/adapters/filesystem"
	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/ports/primary"
	"github.com/example/track/internal/ports/secondary"
)

// PublishServiceImpl implements primary.PublishService. It drives the
// publisher port once per unpublished finished stint and folds the results
// back into the worklog through its update primitive.
type PublishServiceImpl struct {
	worklogPath string
	publisher   secondary.WorklogPublisher
}

var _ primary.PublishService = (*PublishServiceImpl)(nil)

// NewPublishService creates a PublishService.
func NewPublishService(worklogPath string, publisher secondary.WorklogPublisher) *PublishServiceImpl {
	return &PublishServiceImpl{worklogPath: worklogPath, publisher: publisher}
}

// PublishActivity publishes every unpublished finished stint of one
// activity. Stint failures are collected, not fatal: successfully published
// stints stay marked even when others fail.
func (s *PublishServiceImpl) PublishActivity(ctx context.Context, name string) []error {
	var errs []error

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		_, err := log.UpdateActivityContext(ctx, name, func(ctx context.Context, a *worklog.Activity) (*worklog.Activity, error) {
			activity, err := worklog.Verify(a)
			if err != nil {
				return nil, err
			}
			published, stintErrs := s.publishStints(ctx, name, activity)
			errs = append(errs, stintErrs...)
			return &published, nil
		})
		return err
	})
	if err != nil {
		errs = append(errs, err)
	}
	return errs
}

// PublishWorklog publishes all activities. The per-activity publishes run
// concurrently; each result is folded back under the worklog's update
// primitive exactly once, in whatever order the calls finish.
func (s *PublishServiceImpl) PublishWorklog(ctx context.Context) []error {
	var errs []error

	_, err := filesystem.Transact(s.worklogPath, func(log *worklog.Worklog) error {
		type outcome struct {
			name     string
			activity worklog.Activity
			errs     []error
		}

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			outcomes []outcome
		)
		for name, activity := range log.Activities {
			wg.Add(1)
			go func(name string, activity worklog.Activity) {
				defer wg.Done()
				published, stintErrs := s.publishStints(ctx, name, activity)
				mu.Lock()
				outcomes = append(outcomes, outcome{name: name, activity: published, errs: stintErrs})
				mu.Unlock()
			}(name, activity)
		}
		wg.Wait()

		for _, o := range outcomes {
			result := o.activity
			if _, err := log.UpdateActivity(o.name, func(*worklog.Activity) (*worklog.Activity, error) {
				return &result, nil
			}); err != nil {
				return err
			}
			errs = append(errs, o.errs...)
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return errs
}

// publishStints posts each unpublished finished stint sequentially and
// returns the activity with the successful ones marked.
func (s *PublishServiceImpl) publishStints(ctx context.Context, name string, activity worklog.Activity) (worklog.Activity, []error) {
	var errs []error

	comment := fmt.Sprintf("[%s] %s", name, activity.Description)
	stints := make([]worklog.Stint, len(activity.Stints))
	for i, stint := range activity.Stints {
		if stint.IsPublished || !stint.IsFinished() {
			stints[i] = stint
			continue
		}
		if err := s.publisher.PublishStint(ctx, activity.Issue, comment, stint); err != nil {
			errs = append(errs, err)
			stints[i] = stint
			continue
		}
		published, err := stint.Published()
		if err != nil {
			errs = append(errs, err)
			stints[i] = stint
			continue
		}
		stints[i] = published
	}

	activity.Stints = stints
	return activity, errs
}
