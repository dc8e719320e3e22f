// Package track is the event-log processing engine: time-window filtering,
// start/stop pairing and duration aggregation, break deduction, remaining
// time toward goals, and the interactive duplicate-event cleanup.
package track

import (
	"strings"
	"time"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/timeparse"
)

// filterAll is the magic filter keyword that bypasses the time-window
// predicates entirely instead of merely widening them.
const filterAll = "all"

// Filter applies the time window and the description predicate to the
// events, then drops any leading run of stop events so the result always
// begins with a start (or is empty). Order is preserved.
func Filter(events []event.TrackingEvent, from, to timeparse.Bound, filterMode string) []event.TrackingEvent {
	kept := make([]event.TrackingEvent, 0, len(events))
	for _, e := range events {
		if filterMode != filterAll {
			t := e.Time(true)
			if t.Before(from.Lower()) || t.After(to.Upper()) {
				continue
			}
			if filterMode != "" {
				description, ok := e.Description()
				if !ok || !strings.Contains(description, filterMode) {
					continue
				}
			}
		}
		kept = append(kept, e)
	}

	lead := 0
	for lead < len(kept) && kept[lead].IsStop() {
		lead++
	}
	return kept[lead:]
}

// FilterEvents resolves the raw from/to/filter strings against now and
// filters the events in one step.
func FilterEvents(events []event.TrackingEvent, from, to, filter string, now time.Time) ([]event.TrackingEvent, error) {
	mode, fromBound, toBound, err := timeparse.ResolveWindow(from, to, filter, now)
	if err != nil {
		return nil, err
	}
	return Filter(events, fromBound, toBound, mode), nil
}
