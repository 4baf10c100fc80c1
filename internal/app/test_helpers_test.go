package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/ports/secondary"
)

var (
	begin = time.Date(2024, 2, 29, 8, 45, 21, 0, time.FixedZone("CET", 3600))
	end   = time.Date(2024, 2, 29, 12, 3, 47, 0, time.FixedZone("CET", 3600))
	later = time.Date(2024, 2, 29, 18, 44, 34, 0, time.FixedZone("CET", 3600))
)

func finishedStint(begin, end time.Time) worklog.Stint {
	e := end
	return worklog.Stint{Begin: begin, End: &e}
}

func mustActivity(t *testing.T, description, issue string, stints []worklog.Stint) worklog.Activity {
	t.Helper()
	activity, err := worklog.NewActivity(description, issue, stints)
	if err != nil {
		t.Fatalf("failed to build activity: %v", err)
	}
	return activity
}

func worklogFile(t *testing.T, log *worklog.Worklog) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worklog.json")
	if log != nil {
		data, err := json.Marshal(log)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return path
}

// Ensure the mocks implement their ports.
var (
	_ secondary.WorklogPublisher = (*mockPublisher)(nil)
	_ secondary.IssueDirectory   = (*mockDirectory)(nil)
	_ secondary.IssueCache       = (*mockCache)(nil)
)

// mockPublisher records publish calls and fails the issues listed in
// failIssues. PublishWorklog calls it from multiple goroutines.
type mockPublisher struct {
	mu         sync.Mutex
	calls      []publishCall
	failIssues map[string]bool
}

type publishCall struct {
	issue   string
	comment string
	stint   worklog.Stint
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{failIssues: map[string]bool{}}
}

func (m *mockPublisher) PublishStint(ctx context.Context, issue, comment string, stint worklog.Stint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, publishCall{issue: issue, comment: comment, stint: stint})
	if m.failIssues[issue] {
		return fmt.Errorf("post to %s failed", issue)
	}
	return nil
}

// mockDirectory serves canned issue info.
type mockDirectory struct {
	issues map[string]secondary.IssueInfo
	fields map[string]string
	calls  int
}

func (m *mockDirectory) GetIssue(ctx context.Context, key string) (secondary.IssueInfo, error) {
	m.calls++
	info, ok := m.issues[key]
	if !ok {
		return secondary.IssueInfo{}, fmt.Errorf("no issue exists for key %s", key)
	}
	return info, nil
}

func (m *mockDirectory) GetFields(ctx context.Context) (map[string]string, error) {
	return m.fields, nil
}

// mockCache is an in-memory IssueCache.
type mockCache struct {
	entries map[string]secondary.IssueInfo
	getErr  error
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]secondary.IssueInfo{}}
}

func (m *mockCache) Get(ctx context.Context, key string) (secondary.IssueInfo, bool, error) {
	if m.getErr != nil {
		return secondary.IssueInfo{}, false, m.getErr
	}
	info, ok := m.entries[key]
	return info, ok, nil
}

func (m *mockCache) Put(ctx context.Context, info secondary.IssueInfo) error {
	m.puts++
	m.entries[info.Key] = info
	return nil
}
