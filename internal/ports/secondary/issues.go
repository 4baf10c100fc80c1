// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"

	"github.com/example/track/internal/core/worklog"
)

// IssueInfo describes an issue in the external tracker.
type IssueInfo struct {
	Key     string
	Summary string
	EpicKey string // empty when the issue has no epic link
}

// IssueDirectory defines the secondary port for issue metadata lookups.
type IssueDirectory interface {
	// GetIssue retrieves metadata for an issue key.
	GetIssue(ctx context.Context, key string) (IssueInfo, error)

	// GetFields maps human-readable field names to API field IDs.
	GetFields(ctx context.Context) (map[string]string, error)
}

// WorklogPublisher defines the secondary port for publishing finished
// stints to the external tracker.
type WorklogPublisher interface {
	// PublishStint records one finished stint against an issue.
	PublishStint(ctx context.Context, issue, comment string, stint worklog.Stint) error
}

// IssueCache defines the secondary port for the local issue metadata cache.
type IssueCache interface {
	// Get returns the cached info for a key, if present.
	Get(ctx context.Context, key string) (IssueInfo, bool, error)

	// Put stores or refreshes the info for a key.
	Put(ctx context.Context, info IssueInfo) error
}
