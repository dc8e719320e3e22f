package track

import (
	"math"
	"time"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/settings"
)

// CheckedAddDurationError is the panic value raised when summed durations
// overflow. Overflow means a corrupted log, not a user mistake, so the
// process aborts instead of reporting an error.
const CheckedAddDurationError = "couldn't add up durations"

func checkedAdd(a, b time.Duration) time.Duration {
	if b > 0 && a > math.MaxInt64-b {
		panic(CheckedAddDurationError)
	}
	if b < 0 && a < math.MinInt64-b {
		panic(CheckedAddDurationError)
	}
	return a + b
}

func localDate(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// splitDays partitions time-ordered events into contiguous runs sharing the
// same local calendar date. A single left-to-right pass; the boundary test
// always uses second precision regardless of the includeSeconds flag.
func splitDays(events []event.TrackingEvent) [][]event.TrackingEvent {
	if len(events) == 0 {
		return nil
	}
	var days [][]event.TrackingEvent
	var current []event.TrackingEvent
	currentDay := localDate(events[0].Time(true))
	for _, e := range events {
		date := localDate(e.Time(true))
		if !date.Equal(currentDay) {
			days = append(days, current)
			current = nil
			currentDay = date
		}
		current = append(current, e)
	}
	return append(days, current)
}

// dayWorkTime pairs starts with stops greedily in order and sums the worked
// time for one day-run. A start with no following stop is paired with now.
// When the gap between the day's first and last instant leaves less pause
// than the configured minimum break, the shortfall is deducted from the
// worked time, clamped at zero.
func dayWorkTime(set *settings.Settings, day []event.TrackingEvent, includeSeconds bool, now time.Time) time.Duration {
	var workDay time.Duration
	var first, last time.Time

	i := 0
	for {
		for i < len(day) && !day[i].IsStart() {
			i++
		}
		if i >= len(day) {
			break
		}
		start := day[i]
		i++
		for i < len(day) && !day[i].IsStop() {
			i++
		}
		if first.IsZero() {
			first = start.Time(includeSeconds)
		}
		if i < len(day) {
			stop := day[i]
			i++
			last = stop.Time(includeSeconds)
			workDay = checkedAdd(workDay, stop.Time(includeSeconds).Sub(start.Time(includeSeconds)))
		} else {
			// tracking still active, pair with now
			current := now.UTC()
			if !includeSeconds {
				current = current.Truncate(time.Minute)
			}
			last = current
			workDay = checkedAdd(workDay, current.Sub(start.Time(includeSeconds)))
			break
		}
	}

	if set.MinDailyBreak > 0 {
		if first.IsZero() {
			first = now
		}
		if last.IsZero() {
			last = now
		}
		total := last.Sub(first)
		pause := total - workDay
		minBreak := time.Duration(set.MinDailyBreak) * time.Minute
		if pause > 0 && pause < minBreak {
			workDay -= minBreak - pause
		}
	}
	if workDay < 0 {
		return 0
	}
	return workDay
}

// WorkTime sums the worked time of the (already filtered, time-ordered)
// events across day-runs.
func WorkTime(set *settings.Settings, events []event.TrackingEvent, includeSeconds bool, now time.Time) time.Duration {
	var total time.Duration
	for _, day := range splitDays(events) {
		total = checkedAdd(total, dayWorkTime(set, day, includeSeconds, now))
	}
	return total
}

// SplitDuration breaks a duration into whole hours, minutes and seconds.
func SplitDuration(d time.Duration) (hours, minutes, seconds int64) {
	hours = int64(d / time.Hour)
	minutes = int64(d/time.Minute) - hours*60
	seconds = int64(d/time.Second) - hours*3600 - minutes*60
	return hours, minutes, seconds
}
