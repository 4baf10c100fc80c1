// Package filesystem persists worklog documents as JSON files. The store is
// the only component that touches the worklog file; all mutation happens
// through the transaction primitive.
package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/track/internal/core/worklog"
)

// ReadFromFile loads a worklog document without opening a transaction.
// A missing file is an error and the file is never created.
func ReadFromFile(path string) (*worklog.Worklog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worklog file: %w", err)
	}
	return decode(data)
}

// Transact runs fn against the worklog stored at path and persists the
// result. The contract:
//
//   - A missing file yields an empty worklog; the file only comes into
//     existence if fn mutates something. A missing parent directory is an
//     error, directories are never created here.
//   - On exit the activities map is compared by value against the snapshot
//     taken on entry. Unchanged worklogs leave the file completely
//     untouched. Changed ones are rewritten in full, truncating any stale
//     trailing bytes.
//   - Write failures propagate, but the returned worklog still carries the
//     mutation. Callers can compare against the file to detect the split.
//
// The store does no locking; running two transactions against the same path
// concurrently is outside the contract.
func Transact(path string, fn func(*worklog.Worklog) error) (*worklog.Worklog, error) {
	log, err := readOrInit(path)
	if err != nil {
		return nil, err
	}
	snapshot := log.Clone()

	fnErr := fn(log)

	if log.Equal(snapshot) {
		return log, fnErr
	}

	data, err := json.Marshal(log)
	if err != nil {
		return log, errors.Join(fnErr, fmt.Errorf("failed to serialize worklog: %w", err))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return log, errors.Join(fnErr, fmt.Errorf("failed to write worklog file: %w", err))
	}
	return log, fnErr
}

func readOrInit(path string) (*worklog.Worklog, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return decode(data)
	case os.IsNotExist(err):
		// The file may be missing, its directory may not.
		if _, dirErr := os.Stat(filepath.Dir(path)); dirErr != nil {
			return nil, fmt.Errorf("cannot open worklog file: %w", dirErr)
		}
		return worklog.New(), nil
	default:
		return nil, fmt.Errorf("cannot open worklog file: %w", err)
	}
}

func decode(data []byte) (*worklog.Worklog, error) {
	log := worklog.New()
	if err := json.Unmarshal(data, log); err != nil {
		return nil, worklog.ErrWorklogDecode{Cause: err}
	}
	if log.Activities == nil {
		log.Activities = map[string]worklog.Activity{}
	}
	return log, nil
}
