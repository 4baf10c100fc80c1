package app

import (
	"context"

	"github.com/example/track/internal/ports/secondary"
)

// CachedIssueDirectory fronts an IssueDirectory with the local issue cache.
// Cache failures degrade to direct lookups; they never fail the flow.
type CachedIssueDirectory struct {
	directory secondary.IssueDirectory
	cache     secondary.IssueCache
}

var _ secondary.IssueDirectory = (*CachedIssueDirectory)(nil)

// NewCachedIssueDirectory wraps directory with cache. A nil cache is
// allowed and turns the wrapper into a passthrough.
func NewCachedIssueDirectory(directory secondary.IssueDirectory, cache secondary.IssueCache) *CachedIssueDirectory {
	return &CachedIssueDirectory{directory: directory, cache: cache}
}

// GetIssue returns cached metadata when present, otherwise asks the
// tracker and stores the answer.
func (d *CachedIssueDirectory) GetIssue(ctx context.Context, key string) (secondary.IssueInfo, error) {
	if d.cache != nil {
		if info, ok, err := d.cache.Get(ctx, key); err == nil && ok {
			return info, nil
		}
	}

	info, err := d.directory.GetIssue(ctx, key)
	if err != nil {
		return secondary.IssueInfo{}, err
	}

	if d.cache != nil {
		_ = d.cache.Put(ctx, info)
	}
	return info, nil
}

// GetFields passes through; the field catalog is only fetched during
// reconfiguration.
func (d *CachedIssueDirectory) GetFields(ctx context.Context) (map[string]string, error) {
	return d.directory.GetFields(ctx)
}
