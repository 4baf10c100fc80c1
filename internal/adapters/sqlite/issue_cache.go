// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/track/internal/ports/secondary"
)

// IssueCacheRepository implements secondary.IssueCache with SQLite. It
// keeps issue metadata around so interactive flows and shell completion do
// not hit the tracker for every lookup.
type IssueCacheRepository struct {
	db *sql.DB
}

var _ secondary.IssueCache = (*IssueCacheRepository)(nil)

// NewIssueCacheRepository creates a new SQLite issue cache repository.
func NewIssueCacheRepository(db *sql.DB) *IssueCacheRepository {
	return &IssueCacheRepository{db: db}
}

// Get returns the cached info for an issue key.
func (r *IssueCacheRepository) Get(ctx context.Context, key string) (secondary.IssueInfo, bool, error) {
	var (
		info    secondary.IssueInfo
		epicKey sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT key, summary, epic_key FROM issues WHERE key = ?", key,
	).Scan(&info.Key, &info.Summary, &epicKey)
	if errors.Is(err, sql.ErrNoRows) {
		return secondary.IssueInfo{}, false, nil
	}
	if err != nil {
		return secondary.IssueInfo{}, false, fmt.Errorf("failed to query issue cache: %w", err)
	}

	info.EpicKey = epicKey.String
	return info, true, nil
}

// Put stores or refreshes the info for an issue key.
func (r *IssueCacheRepository) Put(ctx context.Context, info secondary.IssueInfo) error {
	var epicKey sql.NullString
	if info.EpicKey != "" {
		epicKey = sql.NullString{String: info.EpicKey, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO issues (key, summary, epic_key, fetched_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			summary = excluded.summary,
			epic_key = excluded.epic_key,
			fetched_at = CURRENT_TIMESTAMP`,
		info.Key, info.Summary, epicKey)
	if err != nil {
		return fmt.Errorf("failed to store issue in cache: %w", err)
	}
	return nil
}
