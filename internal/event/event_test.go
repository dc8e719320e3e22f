package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessors(t *testing.T) {
	at := time.Date(2021, 4, 1, 9, 30, 42, 0, time.UTC)
	start := NewStart("work", at)
	stop := NewStop("", at)

	assert.True(t, start.IsStart())
	assert.False(t, start.IsStop())
	assert.Equal(t, "start", start.Kind())
	assert.True(t, stop.IsStop())
	assert.Equal(t, "stop", stop.Kind())

	description, ok := start.Description()
	require.True(t, ok)
	assert.Equal(t, "work", description)

	_, ok = stop.Description()
	assert.False(t, ok)
}

func TestTimeTruncation(t *testing.T) {
	at := time.Date(2021, 4, 1, 9, 30, 42, 0, time.UTC)
	e := NewStart("", at)

	assert.Equal(t, at, e.Time(true))
	assert.Equal(t, time.Date(2021, 4, 1, 9, 30, 0, 0, time.UTC), e.Time(false))
}

func TestJSONShape(t *testing.T) {
	at := time.Date(2021, 4, 1, 9, 0, 0, 0, time.UTC)

	data, err := json.Marshal(NewStart("work", at))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Start":{"description":"work","time":1617267600}}`, string(data))

	data, err = json.Marshal(NewStop("", at))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Stop":{"description":null,"time":1617267600}}`, string(data))
}

func TestJSONRoundTrip(t *testing.T) {
	events := []TrackingEvent{
		NewStart("work", time.Date(2021, 4, 1, 9, 0, 0, 0, time.UTC)),
		NewStop("", time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC)),
	}
	data, err := json.Marshal(events)
	require.NoError(t, err)

	var decoded []TrackingEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	for i := range events {
		assert.True(t, events[i].Equal(decoded[i]))
	}
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	var e TrackingEvent
	err := json.Unmarshal([]byte(`{"Pause":{"description":null,"time":0}}`), &e)
	assert.Error(t, err)
}

func TestSortAndDedup(t *testing.T) {
	t1 := time.Date(2021, 4, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC)

	events := []TrackingEvent{
		NewStop("", t2),
		NewStart("work", t1),
		NewStop("", t2),
	}
	sorted := SortAndDedup(events)
	require.Len(t, sorted, 2)
	assert.True(t, sorted[0].IsStart())
	assert.True(t, sorted[1].IsStop())
}

func TestSortIsStable(t *testing.T) {
	at := time.Date(2021, 4, 1, 9, 0, 0, 0, time.UTC)
	events := []TrackingEvent{
		NewStart("first", at),
		NewStart("second", at),
	}
	sorted := SortAndDedup(events)
	require.Len(t, sorted, 2)
	description, _ := sorted[0].Description()
	assert.Equal(t, "first", description)
}

func TestHumanReadable(t *testing.T) {
	at := time.Date(2021, 4, 1, 9, 5, 7, 0, time.Local)
	assert.Equal(t, `Start at 2021-04-01 09:05:07 "work"`, NewStart("work", at).HumanReadable())
	assert.Equal(t, "Stop  at 2021-04-01 09:05:07", NewStop("", at).HumanReadable())
}
