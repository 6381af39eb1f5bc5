package mobility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
)

func TestVehiclesNearFiltersByModeAndAvailability(t *testing.T) {
	snap := NewSnapshot([]Vehicle{
		{ID: "v1", Lat: 37.50, Lon: 127.03, Mode: modeparams.Kickboard, BatteryPct: 80, Available: true},
		{ID: "v2", Lat: 37.50, Lon: 127.03, Mode: modeparams.Ebike, BatteryPct: 80, Available: true},
		{ID: "v3", Lat: 37.50, Lon: 127.03, Mode: modeparams.Kickboard, BatteryPct: 80, Available: false},
	}, nil)

	near := snap.VehiclesNear(geo.Point{Lat: 37.50, Lon: 127.03}, 500, modeparams.Kickboard)
	require.Len(t, near, 1)
	assert.Equal(t, "v1", near[0].ID)
}

func TestStationsNearRequiresBikesWhenAsked(t *testing.T) {
	snap := NewSnapshot(nil, []Station{
		{ID: "s1", Lat: 37.50, Lon: 127.03, Active: true, BikesAvailable: 0, DocksAvailable: 5},
		{ID: "s2", Lat: 37.50, Lon: 127.03, Active: true, BikesAvailable: 3, DocksAvailable: 0},
	})

	pickup := snap.StationsNear(geo.Point{Lat: 37.50, Lon: 127.03}, 500, true, false)
	require.Len(t, pickup, 1)
	assert.Equal(t, "s2", pickup[0].ID)
}

func TestLayerSwapReplacesSnapshotAtomically(t *testing.T) {
	first := NewSnapshot(nil, nil)
	second := NewSnapshot([]Vehicle{{ID: "v1", Available: true, Mode: modeparams.Ebike}}, nil)

	layer := NewLayer(first)
	assert.Same(t, first, layer.Current())

	layer.Swap(second)
	assert.Same(t, second, layer.Current())
}

func TestBatteryAfterTravelClampsAtZero(t *testing.T) {
	params := modeparams.Default()
	remaining := BatteryAfterTravel(params, modeparams.Kickboard, 5, 100)
	assert.Equal(t, 0.0, remaining)
}

func TestReachableStopsByVehicleMemoizes(t *testing.T) {
	params := modeparams.Default()
	idx := NewReachabilityIndex(nil, nil, params, 10)
	origin := geo.Point{Lat: 37.50, Lon: 127.03}

	first := idx.ReachableStopsByVehicle(origin, modeparams.Kickboard, 100)
	second := idx.ReachableStopsByVehicle(origin, modeparams.Kickboard, 100)
	assert.Equal(t, first, second)
}

func TestMergeSnapshotsCombinesInventories(t *testing.T) {
	a := NewSnapshot([]Vehicle{{ID: "v1"}}, nil)
	b := NewSnapshot([]Vehicle{{ID: "v2"}}, nil)
	merged := MergeSnapshots(a, b)
	assert.Len(t, merged.Vehicles, 2)
}
