package store

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/hardliner66/timetracking/internal/event"
)

// FileStore keeps the log as a JSON array of tagged start/stop records.
// Writes go to a temporary file first and are renamed over the original, so
// an interrupted write never leaves a half-written log behind.
type FileStore struct {
	path string
}

func (s *FileStore) Load() ([]event.TrackingEvent, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("data file does not exist yet", "path", s.path)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "could not read %s", s.path)
	}
	var events []event.TrackingEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", s.path)
	}
	return events, nil
}

func (s *FileStore) Replace(events []event.TrackingEvent) error {
	if events == nil {
		events = []event.TrackingEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return errors.Wrap(err, "could not serialize data")
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", tmp)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "could not write %s", tmp)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "could not write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, s.path), "could not replace %s", s.path)
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Close() error { return nil }
