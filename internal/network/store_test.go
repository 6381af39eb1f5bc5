package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimetableDropsBadRows(t *testing.T) {
	trips := []Trip{
		{
			ID:        1,
			ServiceID: "weekday",
			StopTimes: []StopTime{{Departure: 0, Arrival: 0}, {Departure: 120, Arrival: 180}},
		},
		{
			// arr < dep at position 1: dropped.
			ID:        2,
			ServiceID: "weekday",
			StopTimes: []StopTime{{Departure: 10, Arrival: 10}, {Departure: 200, Arrival: 50}},
		},
		{
			ID:        3,
			ServiceID: "weekday",
			StopTimes: []StopTime{{Departure: 300, Arrival: 300}, {Departure: 420, Arrival: 480}},
		},
	}

	tt, dropped := BuildTimetable(2, trips)
	require.Equal(t, 1, dropped)
	require.Equal(t, 2, tt.NumTrips())
	// Trips must come out sorted by first-stop departure.
	assert.Equal(t, 0, tt.Dep[0][0])
	assert.Equal(t, 300, tt.Dep[0][1])
	for s := 1; s < len(tt.Dep); s++ {
		for tIdx := range tt.Dep[s] {
			assert.LessOrEqual(t, tt.Dep[s-1][tIdx], tt.Dep[s][tIdx])
			assert.LessOrEqual(t, tt.Arr[s-1][tIdx], tt.Arr[s][tIdx])
		}
	}
}

func TestStoreIndexesRoutesThroughStop(t *testing.T) {
	stops := []Stop{
		{ID: 0, ExtID: "A"},
		{ID: 1, ExtID: "B"},
		{ID: 2, ExtID: "C"},
	}
	routes := []Route{
		{ID: 0, Stops: []StopID{0, 1}},
		{ID: 1, Stops: []StopID{1, 2}},
	}
	store, err := New(stops, routes, map[StopID][]Transfer{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []RouteID{0}, store.RoutesThroughStop(0))
	assert.ElementsMatch(t, []RouteID{0, 1}, store.RoutesThroughStop(1))
	assert.ElementsMatch(t, []RouteID{1}, store.RoutesThroughStop(2))

	pos, ok := store.StopPosition(1, 2)
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	id, ok := store.StopByExtID("B")
	require.True(t, ok)
	assert.Equal(t, StopID(1), id)
}

func TestStoreRejectsUnknownStopReference(t *testing.T) {
	stops := []Stop{{ID: 0, ExtID: "A"}}
	routes := []Route{{ID: 0, Stops: []StopID{0, 99}}}
	_, err := New(stops, routes, nil)
	require.Error(t, err)
}
