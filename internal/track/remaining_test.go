package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/settings"
)

func TestRemainingMinutes(t *testing.T) {
	set := testSettings(0)

	assert.Equal(t, int64(120), RemainingMinutes(set, "", 6, 0))
	assert.Equal(t, int64(-30), RemainingMinutes(set, "", 8, 30))
	assert.Equal(t, int64(34*60), RemainingMinutes(set, "week", 6, 0))
	assert.Equal(t, int64(2*60), RemainingMinutes(set, "meeting", 6, 0))
}

// Wednesday, with six hours worked that day and nothing else in the week.
func remainingFixture() ([]event.TrackingEvent, time.Time, time.Duration) {
	events := []event.TrackingEvent{
		event.NewStart("", localTime(2021, 4, 7, 9, 0, 0)),
		event.NewStop("", localTime(2021, 4, 7, 15, 0, 0)),
	}
	now := localTime(2021, 4, 7, 18, 0, 0)
	return events, now, 6 * time.Hour
}

func TestRemainingWorkTakesSmallerOfDayAndWeek(t *testing.T) {
	events, now, worked := remainingFixture()

	// 2h left for the day, 34h for the week
	remaining, err := RemainingWork(testSettings(0), events, "", worked, true, now)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, remaining)
}

func TestRemainingWorkOnLastWorkDayReportsWeek(t *testing.T) {
	events, now, worked := remainingFixture()

	set := testSettings(0)
	set.LastDayOfWorkWeek = "Wednesday"
	remaining, err := RemainingWork(set, events, "", worked, true, now)
	require.NoError(t, err)
	assert.Equal(t, 34*time.Hour, remaining)
}

func TestRemainingWorkWeekFilterUsesWeeklyGoalOnly(t *testing.T) {
	events, now, _ := remainingFixture()

	weekEvents, err := FilterEvents(events, "", "", "week", now)
	require.NoError(t, err)
	worked := WorkTime(testSettings(0), weekEvents, true, now)

	remaining, err := RemainingWork(testSettings(0), events, "week", worked, true, now)
	require.NoError(t, err)
	assert.Equal(t, 34*time.Hour, remaining)
}

func TestRemainingWorkClampedAtZero(t *testing.T) {
	events, now, worked := remainingFixture()

	set := testSettings(0)
	set.TimeGoal.Daily = settings.TimeGoal{Hours: 1}
	remaining, err := RemainingWork(set, events, "", worked, true, now)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), remaining)
}
