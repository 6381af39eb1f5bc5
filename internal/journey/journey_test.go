package journey

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/gangnam-multimodal/internal/network"
)

func TestParetoFilterDropsDominated(t *testing.T) {
	candidates := []Candidate{
		{TotalTimeMin: 30, Transfers: 1, WalkMeters: 200, TotalCost: 1370},
		{TotalTimeMin: 35, Transfers: 1, WalkMeters: 250, TotalCost: 1370}, // dominated by the first
		{TotalTimeMin: 25, Transfers: 2, WalkMeters: 100, TotalCost: 2000}, // non-dominated tradeoff
	}
	survivors := ParetoFilter(candidates)
	assert.Len(t, survivors, 2)
	assert.Equal(t, 30, survivors[0].TotalTimeMin)
	assert.Equal(t, 25, survivors[1].TotalTimeMin)
}

func TestDedupKeepsShorterWalk(t *testing.T) {
	leg := Leg{Type: LegTransit, FromStop: network.Stop{ID: 1}, ToStop: network.Stop{ID: 2}, RouteName: "Line3", StartMin: 100}
	candidates := []Candidate{
		{Legs: []Leg{leg}, WalkMeters: 500},
		{Legs: []Leg{leg}, WalkMeters: 200},
	}
	deduped := Dedup(candidates)
	assert.Len(t, deduped, 1)
	assert.Equal(t, 200.0, deduped[0].WalkMeters)
}

func TestMergeLegsCombinesConsecutiveSameRoute(t *testing.T) {
	legs := []Leg{
		{Type: LegTransit, RouteID: 1, FromStop: network.Stop{ID: 0}, ToStop: network.Stop{ID: 1}, StartMin: 0, EndMin: 10},
		{Type: LegTransit, RouteID: 1, FromStop: network.Stop{ID: 1}, ToStop: network.Stop{ID: 2}, StartMin: 10, EndMin: 20},
		{Type: LegTransfer, FromStop: network.Stop{ID: 2}, ToStop: network.Stop{ID: 3}, StartMin: 20, EndMin: 25, WalkMeters: 100},
	}
	merged := mergeLegs(legs)
	assert.Len(t, merged, 2)
	assert.Equal(t, network.StopID(0), merged[0].FromStop.ID)
	assert.Equal(t, network.StopID(2), merged[0].ToStop.ID)
	assert.Equal(t, 20, merged[0].EndMin)
}

func TestCandidateFromLegsZeroTransfersForSingleRoute(t *testing.T) {
	legs := []Leg{
		{Type: LegAccess, ToStop: network.Stop{ID: 0}, StartMin: 0, EndMin: 5},
		{Type: LegTransit, RouteID: 3, FromStop: network.Stop{ID: 0}, ToStop: network.Stop{ID: 5}, StartMin: 5, EndMin: 20},
		{Type: LegEgress, FromStop: network.Stop{ID: 5}, StartMin: 20, EndMin: 23},
	}
	c := CandidateFromLegs(legs)
	assert.Equal(t, 0, c.Transfers)
}

func TestCandidateFromLegsCountsRouteSwitch(t *testing.T) {
	legs := []Leg{
		{Type: LegTransit, RouteID: 3, FromStop: network.Stop{ID: 0}, ToStop: network.Stop{ID: 5}, StartMin: 5, EndMin: 20},
		{Type: LegTransfer, FromStop: network.Stop{ID: 5}, ToStop: network.Stop{ID: 6}, StartMin: 20, EndMin: 23},
		{Type: LegTransit, RouteID: 7, FromStop: network.Stop{ID: 6}, ToStop: network.Stop{ID: 9}, StartMin: 23, EndMin: 35},
	}
	c := CandidateFromLegs(legs)
	assert.Equal(t, 1, c.Transfers)
}

func TestToJourneyPopulatesLegGeometry(t *testing.T) {
	c := Candidate{
		Legs: []Leg{
			{Type: LegTransit, FromStop: network.Stop{ID: 0, Lat: 37.50, Lon: 127.00}, ToStop: network.Stop{ID: 1, Lat: 37.51, Lon: 127.01}},
		},
	}
	j := ToJourney(c)
	require.NotNil(t, j.Legs[0].Geometry)
	assert.Equal(t, geojson.GeometryLineString, j.Legs[0].Geometry.Type)
}

func TestSelectReturnsAtMostFive(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, Candidate{TotalTimeMin: 20 + i, Transfers: 0, WalkMeters: 100, TotalCost: 1000})
	}
	pref := Preference{WeightTime: 0.4, WeightTransfers: 0.2, WeightWalk: 0.2, WeightCost: 0.2}
	result := Select(candidates, pref)
	assert.LessOrEqual(t, len(result), 5)
}
