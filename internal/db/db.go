// Package db owns the local SQLite database used as an issue metadata
// cache. The worklog itself lives in a JSON document, not here.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (and initializes, if necessary) the cache database at path.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return database, nil
}
