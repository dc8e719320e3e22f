// Package store persists the event log. The default backend is a JSON file
// replaced atomically on every write; paths ending in .db select a sqlite
// backend instead.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hardliner66/timetracking/internal/event"
)

// Store loads and replaces the complete event log.
type Store interface {
	// Load returns all events; a missing log yields an empty list.
	Load() ([]event.TrackingEvent, error)
	// Replace overwrites the whole log.
	Replace(events []event.TrackingEvent) error
	// Path returns the resolved location of the log.
	Path() string
	Close() error
}

// Open selects a backend for path: sqlite for .db files, the JSON file
// store for everything else.
func Open(path string) (Store, error) {
	if filepath.Ext(path) == ".db" {
		return openSQLite(path)
	}
	return &FileStore{path: path}, nil
}

// ExpandPath expands environment variables and a leading ~ in path.
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "could not expand path")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}
