package app

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/example/track/internal/adapters/filesystem"
	"github.com/example/track/internal/core/worklog"
)

func seededWorklog(t *testing.T) *worklog.Worklog {
	t.Helper()
	return &worklog.Worklog{Activities: map[string]worklog.Activity{
		"flux": mustActivity(t, "Fix the flux capacitor", "TT-17", []worklog.Stint{
			finishedStint(begin, end),
			worklog.NewStint(end.Add(time.Hour)),
		}),
		"circuits": mustActivity(t, "Grease the time circuits", "TT-23", []worklog.Stint{
			finishedStint(begin, end),
		}),
	}}
}

func TestStartCreatesActivityViaFactory(t *testing.T) {
	path := worklogFile(t, nil)
	service := NewTrackerService(path)

	factoryCalls := 0
	result, err := service.Start(context.Background(), "X", begin, func(ctx context.Context, name string) (worklog.Activity, error) {
		factoryCalls++
		if name != "X" {
			t.Errorf("factory received name %q", name)
		}
		return worklog.Activity{Description: "Demo", Issue: "T-1"}, nil
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if factoryCalls != 1 {
		t.Errorf("factory should run exactly once, ran %d times", factoryCalls)
	}
	if !result.Activity.IsRunning() || len(result.Activity.Stints) != 1 {
		t.Errorf("unexpected started activity: %+v", result.Activity)
	}
	if !result.Activity.Stints[0].Begin.Equal(begin) {
		t.Errorf("Begin = %v, want %v", result.Activity.Stints[0].Begin, begin)
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	if !reloaded.Activities["X"].IsRunning() {
		t.Error("the started activity should be persisted")
	}
}

func TestStartResumesWithoutFactory(t *testing.T) {
	path := worklogFile(t, &worklog.Worklog{Activities: map[string]worklog.Activity{
		"circuits": mustActivity(t, "Grease the time circuits", "TT-23", []worklog.Stint{
			finishedStint(begin, end),
		}),
	}})
	service := NewTrackerService(path)

	result, err := service.Start(context.Background(), "circuits", later, func(ctx context.Context, name string) (worklog.Activity, error) {
		t.Error("the factory must not run for an existing activity")
		return worklog.Activity{}, nil
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(result.Activity.Stints) != 2 {
		t.Errorf("want a second stint, got %+v", result.Activity.Stints)
	}
}

func TestStartRunningActivityFails(t *testing.T) {
	path := worklogFile(t, seededWorklog(t))
	service := NewTrackerService(path)

	_, err := service.Start(context.Background(), "flux", later, nil)

	var started worklog.ErrAlreadyStarted
	if !errors.As(err, &started) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStopDefaultsToTheSingleRunningActivity(t *testing.T) {
	path := worklogFile(t, seededWorklog(t))
	service := NewTrackerService(path)

	result, err := service.Stop(context.Background(), "", later)
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if result.Name != "flux" {
		t.Errorf("resolved name = %q, want flux", result.Name)
	}
	if result.Activity.IsRunning() {
		t.Error("the activity should be stopped")
	}
	if result.SecondsUnpublished == 0 {
		t.Error("the stopped stint should count as unpublished work")
	}
}

func TestStopWithNothingRunning(t *testing.T) {
	path := worklogFile(t, &worklog.Worklog{Activities: map[string]worklog.Activity{
		"circuits": mustActivity(t, "d", "TT-23", []worklog.Stint{finishedStint(begin, end)}),
	}})
	service := NewTrackerService(path)

	_, err := service.Stop(context.Background(), "", later)

	var nothing ErrNothingRunning
	if !errors.As(err, &nothing) {
		t.Fatalf("expected ErrNothingRunning, got %v", err)
	}
}

func TestStopIsAmbiguousWithMultipleRunning(t *testing.T) {
	log := seededWorklog(t)
	second, err := log.Activities["circuits"].Started(later)
	if err != nil {
		t.Fatalf("Started failed: %v", err)
	}
	log.Activities["circuits"] = second
	path := worklogFile(t, log)
	service := NewTrackerService(path)

	_, err = service.Stop(context.Background(), "", later.Add(time.Hour))

	var ambiguous worklog.ErrAmbiguousRunning
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected ErrAmbiguousRunning, got %v", err)
	}
}

func TestCancelDeletesSingleStintActivity(t *testing.T) {
	path := worklogFile(t, nil)
	service := NewTrackerService(path)
	ctx := context.Background()

	if _, err := service.Start(ctx, "X", begin, func(ctx context.Context, name string) (worklog.Activity, error) {
		return worklog.Activity{Description: "Demo", Issue: "T-1"}, nil
	}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	result, err := service.Cancel(ctx, "X")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if !result.Deleted {
		t.Error("canceling the only stint should delete the activity")
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	if _, ok := reloaded.Activities["X"]; ok {
		t.Error("the deleted activity must not be persisted")
	}
}

func TestSwitchStopsEverythingAndStartsTarget(t *testing.T) {
	log := seededWorklog(t)
	second, err := log.Activities["circuits"].Started(later)
	if err != nil {
		t.Fatalf("Started failed: %v", err)
	}
	log.Activities["circuits"] = second
	path := worklogFile(t, log)
	service := NewTrackerService(path)

	confirmed := false
	switchTime := later.Add(time.Hour)
	result, err := service.Switch(context.Background(), "fresh", switchTime,
		func(names []string) bool {
			confirmed = true
			if len(names) != 2 {
				t.Errorf("want both running names, got %v", names)
			}
			return true
		},
		func(ctx context.Context, name string) (worklog.Activity, error) {
			return worklog.Activity{Description: "New work", Issue: "TT-99"}, nil
		})
	if err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	if !confirmed {
		t.Error("switching away from multiple running activities needs confirmation")
	}
	if len(result.Stopped) != 2 {
		t.Errorf("want 2 stopped activities, got %d", len(result.Stopped))
	}
	if !result.Started.Activity.IsRunning() {
		t.Error("the target should be running")
	}

	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	running := reloaded.RunningActivities()
	if len(running) != 1 || running[0].Name != "fresh" {
		t.Errorf("only the target should be running, got %+v", running)
	}
}

func TestRemoveConfirmsWhenUnpublished(t *testing.T) {
	path := worklogFile(t, &worklog.Worklog{Activities: map[string]worklog.Activity{
		"circuits": mustActivity(t, "d", "TT-23", []worklog.Stint{finishedStint(begin, end)}),
	}})
	service := NewTrackerService(path)
	ctx := context.Background()

	if err := service.Remove(ctx, "circuits", func(worklog.Activity) bool { return false }); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	reloaded, err := filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	if _, ok := reloaded.Activities["circuits"]; !ok {
		t.Fatal("a declined confirmation must keep the activity")
	}

	if err := service.Remove(ctx, "circuits", func(worklog.Activity) bool { return true }); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	reloaded, err = filesystem.ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile failed: %v", err)
	}
	if _, ok := reloaded.Activities["circuits"]; ok {
		t.Error("a confirmed removal must delete the activity")
	}
}

func TestRemoveMissingActivity(t *testing.T) {
	path := worklogFile(t, seededWorklog(t))
	service := NewTrackerService(path)

	err := service.Remove(context.Background(), "ghost", nil)

	var notFound worklog.ErrActivityNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestStatusWithMissingFile(t *testing.T) {
	path := worklogFile(t, nil)
	service := NewTrackerService(path)

	report, err := service.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(report.All) != 0 || report.TotalSeconds != 0 {
		t.Errorf("a missing worklog should read as empty, got %+v", report)
	}
}

func TestStatusReport(t *testing.T) {
	path := worklogFile(t, seededWorklog(t))
	service := NewTrackerService(path)

	report, err := service.Status(context.Background())
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(report.Running) != 1 || report.Running[0].Name != "flux" {
		t.Errorf("unexpected running set: %+v", report.Running)
	}
	if len(report.Unpublished) != 2 {
		t.Errorf("both activities hold unpublished stints, got %+v", report.Unpublished)
	}
	if report.TotalSeconds == 0 {
		t.Error("total should count all stints")
	}
}

func TestReset(t *testing.T) {
	path := worklogFile(t, seededWorklog(t))
	service := NewTrackerService(path)

	if err := service.Reset(context.Background()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("the worklog file should be gone")
	}
}
