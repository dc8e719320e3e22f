package track

import (
	"time"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/settings"
)

// RemainingMinutes returns how many minutes are left toward the configured
// time goal. Filter "week" selects the weekly goal, anything else the daily
// one. The result can be negative when the goal is already met.
func RemainingMinutes(set *settings.Settings, filter string, hours, minutes int64) int64 {
	total := minutes + hours*60
	goal := set.TimeGoal.Daily
	if filter == "week" {
		goal = set.TimeGoal.Weekly
	}
	required := int64(goal.Minutes) + int64(goal.Hours)*60
	return required - total
}

// RemainingWork computes the remaining work time toward the goals, given the
// worked time of the currently filtered window. When the filter is not
// "week" the weekly figure is computed independently by re-running the whole
// filter and aggregation pipeline over all events; on the configured last
// day of the work week the weekly figure wins, on any other day the smaller
// of the two. The result is clamped at zero.
func RemainingWork(set *settings.Settings, all []event.TrackingEvent, filter string, worked time.Duration, includeSeconds bool, now time.Time) (time.Duration, error) {
	hours, minutes, _ := SplitDuration(worked)
	remaining := RemainingMinutes(set, filter, hours, minutes)

	if filter != "week" {
		weekEvents, err := FilterEvents(all, "", "", "week", now)
		if err != nil {
			return 0, err
		}
		weekWorked := WorkTime(set, weekEvents, includeSeconds, now)
		weekHours, weekMinutes, _ := SplitDuration(weekWorked)
		remainingWeek := RemainingMinutes(set, "week", weekHours, weekMinutes)

		if now.Local().Weekday() == set.LastWorkDay() {
			// on the last day of the work week, always report the weekly figure
			remaining = remainingWeek
		} else if remainingWeek < remaining {
			remaining = remainingWeek
		}
	}

	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * time.Minute, nil
}
