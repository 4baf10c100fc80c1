package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/track/internal/adapters/filesystem"
	"github.com/example/track/internal/core/worklog"
)

func publishWorklog(t *testing.T) *worklog.Worklog {
	t.Helper()
	morning := finishedStint(begin, begin.Add(3*time.Hour+36*time.Minute))
	afternoon := finishedStint(end, end.Add(5*time.Hour+8*time.Minute))
	done, err := finishedStint(begin, end).Published()
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	return &worklog.Worklog{Activities: map[string]worklog.Activity{
		"flux": mustActivity(t, "Fix the flux capacitor", "TT-17", []worklog.Stint{
			morning, afternoon,
		}),
		"circuits": mustActivity(t, "Grease the time circuits", "TT-23", []worklog.Stint{
			done,
			finishedStint(later, later.Add(30*time.Minute)),
			worklog.NewStint(later.Add(time.Hour)),
		}),
	}}
}

func TestPublishActivityMarksEveryStint(t *testing.T) {
	path := worklogFile(t, publishWorklog(t))
	publisher := newMockPublisher()
	service := NewPublishService(path, publisher)

	errs := service.PublishActivity(context.Background(), "flux")
	if len(errs) != 0 {
		t.Fatalf("publish failed: %v", errs)
	}

	if len(publisher.calls) != 2 {
		t.Fatalf("want 2 posts, got %d", len(publisher.calls))
	}
	for _, call := range publisher.calls {
		if call.issue != "TT-17" {
			t.Errorf("posted to %q, want TT-17", call.issue)
		}
		if call.comment != "[flux] Fix the flux capacitor" {
			t.Errorf("comment = %q", call.comment)
		}
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	if got := reloaded.Activities["flux"].SecondsUnpublished(); got != 0 {
		t.Errorf("SecondsUnpublished = %d after a full publish, want 0", got)
	}
	if got := reloaded.Activities["flux"].SecondsTotal(); got != (3*3600+36*60)+(5*3600+8*60) {
		t.Errorf("SecondsTotal = %d", got)
	}
}

func TestPublishActivitySkipsPublishedAndOpenStints(t *testing.T) {
	path := worklogFile(t, publishWorklog(t))
	publisher := newMockPublisher()
	service := NewPublishService(path, publisher)

	errs := service.PublishActivity(context.Background(), "circuits")
	if len(errs) != 0 {
		t.Fatalf("publish failed: %v", errs)
	}
	if len(publisher.calls) != 1 {
		t.Fatalf("only the finished unpublished stint should post, got %d calls", len(publisher.calls))
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	activity := reloaded.Activities["circuits"]
	if !activity.Stints[1].IsPublished {
		t.Error("the finished stint should be marked published")
	}
	if activity.Stints[2].IsPublished || activity.Stints[2].IsFinished() {
		t.Error("the open stint must stay open and unpublished")
	}
}

func TestPublishActivityKeepsFailedStintsUnpublished(t *testing.T) {
	morning := finishedStint(begin, end)
	evening := finishedStint(later, later.Add(time.Hour))
	path := worklogFile(t, &worklog.Worklog{Activities: map[string]worklog.Activity{
		"flux": mustActivity(t, "d", "TT-17", []worklog.Stint{morning, evening}),
	}})

	posts := 0
	publisher := newMockPublisher()
	service := NewPublishService(path, &flakyPublisher{inner: publisher, failOn: func() bool {
		posts++
		return posts == 1
	}})

	errs := service.PublishActivity(context.Background(), "flux")
	if len(errs) != 1 {
		t.Fatalf("want one error, got %v", errs)
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	activity := reloaded.Activities["flux"]
	if activity.Stints[0].IsPublished {
		t.Error("the failed stint must stay unpublished")
	}
	if !activity.Stints[1].IsPublished {
		t.Error("the successful stint must be marked despite the earlier failure")
	}
}

func TestPublishActivityUnknownName(t *testing.T) {
	path := worklogFile(t, publishWorklog(t))
	service := NewPublishService(path, newMockPublisher())

	errs := service.PublishActivity(context.Background(), "ghost")
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "ghost") {
		t.Fatalf("want a single not-found error, got %v", errs)
	}
}

func TestPublishWorklogCoversEveryActivity(t *testing.T) {
	path := worklogFile(t, publishWorklog(t))
	publisher := newMockPublisher()
	service := NewPublishService(path, publisher)

	errs := service.PublishWorklog(context.Background())
	if len(errs) != 0 {
		t.Fatalf("publish failed: %v", errs)
	}
	if len(publisher.calls) != 3 {
		t.Fatalf("want 3 posts across both activities, got %d", len(publisher.calls))
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	for name, activity := range reloaded.Activities {
		for i, stint := range activity.Stints {
			if stint.IsFinished() && !stint.IsPublished {
				t.Errorf("%s stint %d left unpublished", name, i)
			}
		}
	}
}

func TestPublishWorklogAggregatesFailures(t *testing.T) {
	path := worklogFile(t, publishWorklog(t))
	publisher := newMockPublisher()
	publisher.failIssues["TT-17"] = true
	service := NewPublishService(path, publisher)

	errs := service.PublishWorklog(context.Background())
	if len(errs) != 2 {
		t.Fatalf("both flux stints should fail, got %v", errs)
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	if reloaded.Activities["flux"].SecondsUnpublished() == 0 {
		t.Error("failed stints must still count as unpublished")
	}
	if !reloaded.Activities["circuits"].Stints[1].IsPublished {
		t.Error("the healthy activity should still publish")
	}
}

// flakyPublisher interposes a failure predicate in front of another
// publisher.
type flakyPublisher struct {
	inner  *mockPublisher
	failOn func() bool
}

func (f *flakyPublisher) PublishStint(ctx context.Context, issue, comment string, stint worklog.Stint) error {
	if f.failOn() {
		return errPostRefused
	}
	return f.inner.PublishStint(ctx, issue, comment, stint)
}

var errPostRefused = errPost("the tracker refused the post")

type errPost string

func (e errPost) Error() string { return string(e) }
