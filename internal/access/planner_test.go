package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

func testStops() []network.Stop {
	return []network.Stop{
		{ID: 0, ExtID: "A", Name: "Near", Lat: 37.5000, Lon: 127.0300},
		{ID: 1, ExtID: "B", Name: "Far", Lat: 37.6000, Lon: 127.2000},
	}
}

func TestAccessWalkOptionsOnlyIncludesStopsWithinLimit(t *testing.T) {
	params := modeparams.Default()
	reach := mobility.NewReachabilityIndex(nil, nil, params, 10)
	planner := NewPlanner(testStops(), reach, params)

	origin := geo.Point{Lat: 37.5001, Lon: 127.0301}
	options := planner.Access(origin, TransitOnly, Limits{MaxWalkMeters: 500}, nil)

	require.Len(t, options, 1)
	assert.Equal(t, network.StopID(0), options[0].StopID)
	assert.Equal(t, AccessWalk, options[0].AccessMode)
}

func TestAccessTransitOnlyIgnoresMobilitySnapshot(t *testing.T) {
	params := modeparams.Default()
	reach := mobility.NewReachabilityIndex(nil, nil, params, 10)
	planner := NewPlanner(testStops(), reach, params)

	snap := mobility.NewSnapshot([]mobility.Vehicle{
		{ID: "v1", Lat: 37.5001, Lon: 127.0301, Mode: modeparams.Kickboard, BatteryPct: 100, Available: true},
	}, nil)

	origin := geo.Point{Lat: 37.5001, Lon: 127.0301}
	options := planner.Access(origin, TransitOnly, Limits{MaxWalkMeters: 500, PickupRadiusM: 500}, snap)

	for _, o := range options {
		assert.Equal(t, AccessWalk, o.AccessMode)
	}
}

func TestEgressIsSymmetricWithAccess(t *testing.T) {
	params := modeparams.Default()
	reach := mobility.NewReachabilityIndex(nil, nil, params, 10)
	planner := NewPlanner(testStops(), reach, params)

	point := geo.Point{Lat: 37.5001, Lon: 127.0301}
	limits := Limits{MaxWalkMeters: 500}
	assert.Equal(t, planner.Access(point, TransitOnly, limits, nil), planner.Egress(point, TransitOnly, limits, nil))
}
