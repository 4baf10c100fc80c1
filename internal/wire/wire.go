// Package wire provides dependency injection for the application. It
// creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"os"
	"sync"

	"github.com/example/track/internal/adapters/jira"
	"github.com/example/track/internal/adapters/sqlite"
	"github.com/example/track/internal/app"
	"github.com/example/track/internal/config"
	"github.com/example/track/internal/db"
	"github.com/example/track/internal/ports/primary"
	"github.com/example/track/internal/ports/secondary"
)

var (
	configDir      string
	cfg            *config.Config
	trackerService primary.TrackerService
	publishService primary.PublishService
	issueDirectory secondary.IssueDirectory
	initErr        error
	once           sync.Once
)

// SetConfigDir overrides the configuration directory. Must be called
// before any service accessor; the CLI wires its --config-dir flag here.
func SetConfigDir(dir string) {
	configDir = dir
}

// ConfigDir returns the effective configuration directory.
func ConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return config.DefaultDir()
}

// Config returns the loaded configuration.
func Config() (*config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// TrackerService returns the singleton TrackerService instance.
func TrackerService() (primary.TrackerService, error) {
	once.Do(initServices)
	return trackerService, initErr
}

// PublishService returns the singleton PublishService instance.
func PublishService() (primary.PublishService, error) {
	once.Do(initServices)
	return publishService, initErr
}

// IssueDirectory returns the singleton issue directory, fronted by the
// local metadata cache when the cache database can be opened.
func IssueDirectory() (secondary.IssueDirectory, error) {
	once.Do(initServices)
	return issueDirectory, initErr
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := ConfigDir()
	if err != nil {
		initErr = err
		return
	}

	cfg, err = config.Load(dir)
	if err != nil {
		initErr = fmt.Errorf("not configured yet, run `track reconfigure` first: %w", err)
		return
	}

	client := jira.NewClient(jira.Options{
		Host:          cfg.Host,
		Token:         cfg.Token,
		DefaultGroup:  cfg.DefaultGroup,
		EpicLinkField: cfg.EpicLinkField,
	}, nil)

	// The cache is an optimization. If its database cannot be opened the
	// directory degrades to direct lookups.
	var cache secondary.IssueCache
	if database, err := db.Open(cfg.CachePath(dir)); err == nil {
		cache = sqlite.NewIssueCacheRepository(database)
	} else {
		fmt.Fprintf(os.Stderr, "warning: issue cache unavailable: %v\n", err)
	}

	worklogPath := cfg.WorklogPath(dir)
	trackerService = app.NewTrackerService(worklogPath)
	publishService = app.NewPublishService(worklogPath, client)
	issueDirectory = app.NewCachedIssueDirectory(client, cache)
}
