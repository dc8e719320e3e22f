package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardliner66/timetracking/internal/event"
	"github.com/hardliner66/timetracking/internal/timeparse"
)

func localTime(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.Local)
}

func TestFilterAllBypassesWindow(t *testing.T) {
	events := []event.TrackingEvent{
		event.NewStart("work", localTime(2019, 6, 3, 9, 0, 0)),
		event.NewStop("", localTime(2019, 6, 3, 17, 0, 0)),
		event.NewStart("", localTime(2023, 1, 2, 9, 0, 0)),
		event.NewStop("", localTime(2023, 1, 2, 17, 0, 0)),
	}
	// bounds that match nothing
	from := timeparse.Date(localTime(1999, 1, 1, 0, 0, 0))
	to := timeparse.Date(localTime(1999, 1, 1, 0, 0, 0))

	assert.Len(t, Filter(events, from, to, "all"), len(events))
	assert.Empty(t, Filter(events, from, to, ""))
}

func TestFilterWindowWidensDateBounds(t *testing.T) {
	day := timeparse.Date(localTime(2021, 4, 1, 12, 0, 0))
	events := []event.TrackingEvent{
		event.NewStart("", localTime(2021, 3, 31, 23, 59, 59)),
		event.NewStart("", localTime(2021, 4, 1, 0, 0, 0)),
		event.NewStop("", localTime(2021, 4, 1, 23, 59, 59)),
		event.NewStart("", localTime(2021, 4, 2, 0, 0, 0)),
	}
	filtered := Filter(events, day, day, "")
	require.Len(t, filtered, 2)
	assert.True(t, filtered[0].Time(true).Equal(localTime(2021, 4, 1, 0, 0, 0)))
	assert.True(t, filtered[1].Time(true).Equal(localTime(2021, 4, 1, 23, 59, 59)))
}

func TestFilterExactBounds(t *testing.T) {
	from := timeparse.DateTime(localTime(2021, 4, 1, 10, 0, 0))
	to := timeparse.DateTime(localTime(2021, 4, 1, 12, 0, 0))
	events := []event.TrackingEvent{
		event.NewStart("", localTime(2021, 4, 1, 9, 59, 59)),
		event.NewStart("", localTime(2021, 4, 1, 10, 0, 0)),
		event.NewStop("", localTime(2021, 4, 1, 12, 0, 0)),
		event.NewStop("", localTime(2021, 4, 1, 12, 0, 1)),
	}
	filtered := Filter(events, from, to, "")
	require.Len(t, filtered, 2)
	assert.True(t, filtered[0].IsStart())
	assert.True(t, filtered[1].IsStop())
}

func TestFilterByDescription(t *testing.T) {
	day := timeparse.Date(localTime(2021, 4, 1, 0, 0, 0))
	events := []event.TrackingEvent{
		event.NewStart("daily meeting", localTime(2021, 4, 1, 9, 0, 0)),
		event.NewStart("", localTime(2021, 4, 1, 10, 0, 0)),
		event.NewStart("lunch", localTime(2021, 4, 1, 12, 0, 0)),
	}

	filtered := Filter(events, day, day, "meeting")
	require.Len(t, filtered, 1)
	description, _ := filtered[0].Description()
	assert.Equal(t, "daily meeting", description)

	// events without a description survive only the "all" filter
	assert.Len(t, Filter(events, day, day, "all"), 3)
}

func TestFilterDropsLeadingStops(t *testing.T) {
	day := timeparse.Date(localTime(2021, 4, 1, 0, 0, 0))
	events := []event.TrackingEvent{
		event.NewStop("", localTime(2021, 4, 1, 8, 0, 0)),
		event.NewStop("", localTime(2021, 4, 1, 8, 30, 0)),
		event.NewStart("", localTime(2021, 4, 1, 9, 0, 0)),
		event.NewStop("", localTime(2021, 4, 1, 17, 0, 0)),
	}
	filtered := Filter(events, day, day, "")
	require.Len(t, filtered, 2)
	assert.True(t, filtered[0].IsStart())

	// same guarantee under the "all" filter
	filtered = Filter(events, day, day, "all")
	require.NotEmpty(t, filtered)
	assert.True(t, filtered[0].IsStart())

	assert.Empty(t, Filter(events[:2], day, day, ""))
}

func TestFilterEventsResolvesWindow(t *testing.T) {
	now := localTime(2021, 4, 1, 18, 0, 0)
	events := []event.TrackingEvent{
		event.NewStart("", localTime(2021, 3, 29, 9, 0, 0)),
		event.NewStart("", localTime(2021, 4, 1, 9, 0, 0)),
	}

	// defaults to the current day
	filtered, err := FilterEvents(events, "", "", "", now)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Time(true).Equal(localTime(2021, 4, 1, 9, 0, 0)))

	// week covers Monday through Sunday
	filtered, err = FilterEvents(events, "", "", "week", now)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	_, err = FilterEvents(events, "garbage", "", "", now)
	assert.Error(t, err)
}
