// Package event holds the in-memory model of the tracking log: an ordered
// list of start/stop records with optional descriptions.
package event

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// TrackingData is the payload shared by both event kinds.
type TrackingData struct {
	Description *string
	Time        time.Time // UTC, whole-second resolution
}

// TrackingEvent is either a start or a stop record. The kind can only be
// inspected through IsStart/IsStop, so an event is always exactly one of
// the two shapes.
type TrackingEvent struct {
	start bool
	data  TrackingData
}

// Start wraps data into a start event.
func Start(data TrackingData) TrackingEvent {
	return TrackingEvent{start: true, data: normalize(data)}
}

// Stop wraps data into a stop event.
func Stop(data TrackingData) TrackingEvent {
	return TrackingEvent{start: false, data: normalize(data)}
}

// NewStart builds a start event. An empty description means "no description".
func NewStart(description string, t time.Time) TrackingEvent {
	return Start(TrackingData{Description: optional(description), Time: t})
}

// NewStop builds a stop event. An empty description means "no description".
func NewStop(description string, t time.Time) TrackingEvent {
	return Stop(TrackingData{Description: optional(description), Time: t})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalize(data TrackingData) TrackingData {
	data.Time = data.Time.UTC().Truncate(time.Second)
	return data
}

// Time returns the event instant. With includeSeconds false the instant is
// truncated to whole minutes, which changes pairing and break-deduction
// results downstream, so truncation happens here and not at display time.
func (e TrackingEvent) Time(includeSeconds bool) time.Time {
	if includeSeconds {
		return e.data.Time
	}
	return e.data.Time.Truncate(time.Minute)
}

// Description returns the event description and whether one is set.
func (e TrackingEvent) Description() (string, bool) {
	if e.data.Description == nil {
		return "", false
	}
	return *e.data.Description, true
}

func (e TrackingEvent) IsStart() bool { return e.start }

func (e TrackingEvent) IsStop() bool { return !e.start }

// Kind returns "start" or "stop".
func (e TrackingEvent) Kind() string {
	if e.start {
		return "start"
	}
	return "stop"
}

// Equal reports whether two events are exact duplicates.
func (e TrackingEvent) Equal(other TrackingEvent) bool {
	if e.start != other.start || !e.data.Time.Equal(other.data.Time) {
		return false
	}
	d1, ok1 := e.Description()
	d2, ok2 := other.Description()
	return ok1 == ok2 && d1 == d2
}

// HumanReadable renders the event in local time, e.g.
// `Start at 2021-04-01 09:00:00 "work"`.
func (e TrackingEvent) HumanReadable() string {
	prefix := "Stop "
	if e.start {
		prefix = "Start"
	}
	t := e.data.Time.Local()
	s := fmt.Sprintf("%s at %04d-%02d-%02d %02d:%02d:%02d",
		prefix, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	if description, ok := e.Description(); ok {
		s += fmt.Sprintf(" %q", description)
	}
	return s
}

// payload is the wire shape of the event body, compatible with the original
// log layout (unix seconds, nullable description).
type payload struct {
	Description *string `json:"description"`
	Time        int64   `json:"time"`
}

// MarshalJSON encodes the event as an externally tagged variant:
// {"Start":{...}} or {"Stop":{...}}.
func (e TrackingEvent) MarshalJSON() ([]byte, error) {
	p := payload{Description: e.data.Description, Time: e.data.Time.Unix()}
	if e.start {
		return json.Marshal(map[string]payload{"Start": p})
	}
	return json.Marshal(map[string]payload{"Stop": p})
}

func (e *TrackingEvent) UnmarshalJSON(b []byte) error {
	var m map[string]payload
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return errors.Errorf("event must be tagged with exactly one of Start or Stop, got %d tags", len(m))
	}
	for kind, p := range m {
		switch kind {
		case "Start":
			e.start = true
		case "Stop":
			e.start = false
		default:
			return errors.Errorf("unknown event kind %q", kind)
		}
		e.data = TrackingData{Description: p.Description, Time: time.Unix(p.Time, 0).UTC()}
	}
	return nil
}

// SortAndDedup returns the events ordered by time (stable, so ties keep
// their original relative order) with exact adjacent duplicates removed.
// Every mutating command runs the log through this before persisting.
func SortAndDedup(events []TrackingEvent) []TrackingEvent {
	sorted := make([]TrackingEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time(true).Before(sorted[j].Time(true))
	})

	out := make([]TrackingEvent, 0, len(sorted))
	for _, e := range sorted {
		if len(out) > 0 && out[len(out)-1].Equal(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}
