// Package timeparse resolves user-supplied date/time strings and filter
// keywords into concrete time-window boundaries.
//
// Accepted inputs, in priority order: "HH:MM:SS", "HH:MM", "HH" (today,
// local time), "YYYY-MM-DD" (calendar date), and "YYYY-MM-DD HH[:MM[:SS]]"
// (exact local instant).
package timeparse

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// Bound is a resolved filter boundary: either a whole calendar day or an
// exact instant. Day bounds widen to 00:00:00 / 23:59:59 local time, with
// the UTC offset taken at the bound's own date rather than at "now".
type Bound struct {
	t        time.Time
	dateOnly bool
}

// Date builds a calendar-day bound from t's local date.
func Date(t time.Time) Bound {
	t = t.Local()
	return Bound{
		t:        time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local),
		dateOnly: true,
	}
}

// DateTime builds an exact-instant bound.
func DateTime(t time.Time) Bound {
	return Bound{t: t}
}

// DateOnly reports whether the bound is a whole calendar day.
func (b Bound) DateOnly() bool { return b.dateOnly }

// Lower returns the earliest instant covered by the bound.
func (b Bound) Lower() time.Time {
	return b.t
}

// Upper returns the latest instant covered by the bound.
func (b Bound) Upper() time.Time {
	if b.dateOnly {
		return time.Date(b.t.Year(), b.t.Month(), b.t.Day(), 23, 59, 59, 0, time.Local)
	}
	return b.t
}

// AsDate widens the bound to its calendar day.
func (b Bound) AsDate() Bound {
	return Date(b.t)
}

// parseClock splits "HH", "HH:MM" or "HH:MM:SS" into clock components, with
// omitted parts defaulting to zero.
func parseClock(s string) (hour, minute, second int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, 0, 0, errors.Errorf("could not parse time %q", s)
	}
	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, 0, 0, errors.Errorf("could not parse time %q", s)
		}
		numbers[i] = n
	}
	hour, minute, second = numbers[0], numbers[1], numbers[2]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, errors.Errorf("time %q out of range", s)
	}
	return hour, minute, second, nil
}

// ParseDateTime parses s into a UTC instant. Bare clock values resolve to
// now's local date; "YYYY-MM-DD HH[:MM[:SS]]" resolves at that date with the
// local offset in effect there.
func ParseDateTime(s string, now time.Time) (time.Time, error) {
	now = now.Local()
	if hour, minute, second, err := parseClock(s); err == nil {
		t := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, time.Local)
		return t.UTC(), nil
	}

	datePart, clockPart, found := strings.Cut(s, " ")
	if !found {
		return time.Time{}, errors.Errorf("could not parse %q as time or date time", s)
	}
	date, err := time.ParseInLocation(dateLayout, datePart, time.Local)
	if err != nil {
		return time.Time{}, errors.Errorf("could not parse %q as time or date time", s)
	}
	hour, minute, second, err := parseClock(clockPart)
	if err != nil {
		return time.Time{}, errors.Errorf("could not parse %q as time or date time", s)
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, second, 0, time.Local)
	return t.UTC(), nil
}

// ParseDateOrDateTime parses s into a filter boundary: a calendar date for
// "YYYY-MM-DD", otherwise an exact instant via ParseDateTime.
func ParseDateOrDateTime(s string, now time.Time) (Bound, error) {
	if date, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return Date(date), nil
	}
	t, err := ParseDateTime(s, now)
	if err != nil {
		return Bound{}, err
	}
	return DateTime(t), nil
}

// ResolveWindow turns the raw from/to/filter strings into an effective
// filter keyword and the window boundaries.
//
// The special filter "week" ignores from/to and selects the Monday..Sunday
// of now's local week. Otherwise from defaults to today and to defaults to
// from's calendar day. Empty strings mean "not given".
func ResolveWindow(from, to, filter string, now time.Time) (string, Bound, Bound, error) {
	if filter == "week" {
		offset := int(now.Local().Weekday()+6) % 7 // days since Monday
		monday := Date(now.Local().AddDate(0, 0, -offset))
		sunday := Date(now.Local().AddDate(0, 0, 6-offset))
		return "", monday, sunday, nil
	}

	fromBound := Date(now)
	if from != "" {
		parsed, err := ParseDateOrDateTime(from, now)
		if err != nil {
			return "", Bound{}, Bound{}, err
		}
		fromBound = parsed
	}

	toBound := fromBound.AsDate()
	if to != "" {
		parsed, err := ParseDateOrDateTime(to, now)
		if err != nil {
			return "", Bound{}, Bound{}, err
		}
		toBound = parsed
	}

	return filter, fromBound, toBound, nil
}
