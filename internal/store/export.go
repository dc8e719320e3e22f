package store

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/hardliner66/timetracking/internal/event"
)

// WriteJSON exports the events as raw JSON, optionally indented. The output
// can be read back with ReadJSON.
func WriteJSON(path string, events []event.TrackingEvent, pretty bool) error {
	if events == nil {
		events = []event.TrackingEvent{}
	}
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(events, "", "  ")
	} else {
		data, err = json.Marshal(events)
	}
	if err != nil {
		return errors.Wrap(err, "could not serialize data")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "could not export to %s", path)
}

// ReadJSON imports events from a JSON export.
func ReadJSON(path string) ([]event.TrackingEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not import %s", path)
	}
	var events []event.TrackingEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, errors.Wrapf(err, "could not import %s", path)
	}
	return events, nil
}

// WriteReadable exports the events as human-readable lines. The format is
// for reading only and cannot be imported back.
func WriteReadable(path string, events []event.TrackingEvent) error {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, e.HumanReadable())
	}
	return errors.Wrapf(
		os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644),
		"could not export to %s", path,
	)
}
