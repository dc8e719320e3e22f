package track

import (
	"fmt"
	"io"
	"time"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/settings"
	"github.com/hardliner66/timetracking/internal/timeparse"
)

// StartTracking appends a start event. When tracking is already running and
// no explicit time is given, the configured auto-insert-stop policy either
// synthesizes a stop first or the violation is reported to errw without
// mutating the log.
func StartTracking(set *settings.Settings, events []event.TrackingEvent, description, at string, now time.Time, errw io.Writer) ([]event.TrackingEvent, error) {
	shouldAdd := true
	lastDescription := ""
	hasLastDescription := false
	if len(events) > 0 {
		last := events[len(events)-1]
		shouldAdd = last.IsStop()
		lastDescription, hasLastDescription = last.Description()
	}

	switch {
	case shouldAdd || at != "":
		t := now
		if at != "" {
			parsed, err := timeparse.ParseDateTime(at, now)
			if err != nil {
				return events, err
			}
			t = parsed
		}
		return append(events, event.NewStart(description, t)), nil
	case set.AutoInsertStop:
		if description != "" && hasLastDescription && description == lastDescription {
			fmt.Fprintf(errw, "Timetracking with the description %q is already running!\n", description)
			return events, nil
		}
		events = append(events, event.NewStop("", now))
		return append(events, event.NewStart(description, now)), nil
	default:
		fmt.Fprintln(errw, "Time tracking is already running!")
		return events, nil
	}
}

// StopTracking appends a stop event unless tracking is already stopped and
// no explicit time is given.
func StopTracking(events []event.TrackingEvent, description, at string, now time.Time, errw io.Writer) ([]event.TrackingEvent, error) {
	shouldAdd := true
	if len(events) > 0 {
		shouldAdd = events[len(events)-1].IsStart()
	}
	if !shouldAdd && at == "" {
		fmt.Fprintln(errw, "Time tracking is already stopped!")
		return events, nil
	}
	t := now
	if at != "" {
		parsed, err := timeparse.ParseDateTime(at, now)
		if err != nil {
			return events, err
		}
		t = parsed
	}
	return append(events, event.NewStop(description, t)), nil
}

// ContinueTracking re-pushes a start carrying the most recent start's
// description, but only when the log currently ends in a stop.
func ContinueTracking(events []event.TrackingEvent, now time.Time, errw io.Writer) []event.TrackingEvent {
	if len(events) == 0 || !events[len(events)-1].IsStop() {
		fmt.Fprintln(errw, "Time tracking couldn't be continued, because there are no entries. Use the start command instead!")
		return events
	}
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].IsStart() {
			description, _ := events[i].Description()
			return append(events, event.NewStart(description, now))
		}
	}
	return events
}

// Status prints the last event's kind, local time and description. It
// returns whether tracking is currently active and whether the log holds
// any events at all.
func Status(events []event.TrackingEvent, w io.Writer) (active, ok bool) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No Events found!")
		return false, false
	}
	last := events[len(events)-1]
	active = last.IsStart()
	label := "End"
	if active {
		label = "Start"
	}
	fmt.Fprintf(w, "Active: %v\n", active)
	if description, has := last.Description(); has {
		fmt.Fprintf(w, "Description: %s\n", description)
	}
	t := last.Time(true).Local()
	fmt.Fprintf(w, "%s Time: %02d:%02d:%02d\n", label, t.Hour(), t.Minute(), t.Second())
	return active, true
}
