package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// buildSimpleLineStore creates a three-stop single-route network with one
// trip, for exercising the route-scan + transfer-closure loop without a
// database.
func buildSimpleLineStore(t *testing.T) *network.Store {
	t.Helper()
	stops := []network.Stop{
		{ID: 0, ExtID: "A", Lat: 37.50, Lon: 127.00},
		{ID: 1, ExtID: "B", Lat: 37.51, Lon: 127.01},
		{ID: 2, ExtID: "C", Lat: 37.52, Lon: 127.02},
	}
	trips := []network.Trip{
		{
			ID:        0,
			ServiceID: "weekday",
			StopTimes: []network.StopTime{
				{Departure: 480, Arrival: 480},
				{Departure: 490, Arrival: 490},
				{Departure: 500, Arrival: 500},
			},
		},
	}
	tt, _ := network.BuildTimetable(3, trips)
	routes := []network.Route{
		{ID: 0, ModeClass: network.ModeBus, Stops: []network.StopID{0, 1, 2}, Trips: trips, Timetable: tt},
	}
	store, err := network.New(stops, routes, map[network.StopID][]network.Transfer{})
	require.NoError(t, err)
	return store
}

func TestRunRespectsRoundMonotonicity(t *testing.T) {
	store := buildSimpleLineStore(t)
	in := Input{
		Store:         store,
		Stops:         store.AllStops(),
		AccessOptions: []access.Option{{StopID: 0, AccessMinutes: 0, AccessMode: access.AccessWalk}},
		DepartureTime: 475,
		ServiceID:     "weekday",
		Policy:        access.TransitOnly,
		MaxRounds:     6,
	}

	table := Run(context.Background(), in)

	for s := 0; s < store.NumStops(); s++ {
		for k := 1; k <= table.Rounds; k++ {
			assert.LessOrEqual(t, table.Tau[k][s], table.Tau[k-1][s], "round monotonicity violated at stop %d round %d", s, k)
		}
	}

	// Boarding at stop A at 475 should reach stop C (index 2) by 500.
	best := Infinity
	for k := 0; k <= table.Rounds; k++ {
		if table.Tau[k][2] < best {
			best = table.Tau[k][2]
		}
	}
	assert.Equal(t, 500, best)
}

// TestTransferClosurePicksUpMobilityHop exercises the transfer-closure
// mobility-hop relaxation directly: stop A is far enough from the
// kickboard that the k-1 -> k mobilityPropagation phase (which only
// considers stops marked in round k-1, here just A) never finds it, so the
// only way stop E gets reached in round 1 is through the mobility-hop
// relaxation inside round 1's transfer-closure loop, taken from stop C
// (reached by the route scan, about 70m from the vehicle).
func TestTransferClosurePicksUpMobilityHop(t *testing.T) {
	stops := []network.Stop{
		{ID: 0, ExtID: "A", Lat: 37.400, Lon: 127.000},
		{ID: 1, ExtID: "C", Lat: 37.501, Lon: 127.001},
		{ID: 2, ExtID: "D", Lat: 37.5015, Lon: 127.0015},
		{ID: 3, ExtID: "E", Lat: 37.5016, Lon: 127.0016},
	}
	trips := []network.Trip{
		{
			ID:        0,
			ServiceID: "weekday",
			StopTimes: []network.StopTime{
				{Departure: 480, Arrival: 480},
				{Departure: 490, Arrival: 490},
			},
		},
	}
	tt, dropped := network.BuildTimetable(2, trips)
	require.Equal(t, 0, dropped)
	routes := []network.Route{
		{ID: 0, ModeClass: network.ModeBus, Stops: []network.StopID{0, 1}, Trips: trips, Timetable: tt},
	}
	transfers := map[network.StopID][]network.Transfer{
		1: {{ToStop: 2, WalkMinutes: 1}},
	}
	store, err := network.New(stops, routes, transfers)
	require.NoError(t, err)

	snapshot := mobility.NewSnapshot(
		[]mobility.Vehicle{{ID: "kb-1", Lat: 37.5015, Lon: 127.0015, Mode: modeparams.Kickboard, BatteryPct: 100, Available: true}},
		nil,
	)
	reach := mobility.NewReachabilityIndex(stops, geo.NewGraph(), modeparams.Default(), 16)

	in := Input{
		Store:         store,
		Stops:         store.AllStops(),
		AccessOptions: []access.Option{{StopID: 0, AccessMinutes: 0, AccessMode: access.AccessWalk}},
		DepartureTime: 480,
		ServiceID:     "weekday",
		Policy:        access.Multimodal,
		MaxRounds:     3,
		Reach:         reach,
		Snapshot:      snapshot,
		Params:        modeparams.Default(),
	}

	table := Run(context.Background(), in)

	assert.Less(t, table.Tau[1][3], Infinity, "stop E should be reached in round 1 via the transfer-closure mobility hop")
	assert.Equal(t, ParentMobilityRide, table.Parent[1][3].Kind)
	assert.Equal(t, 1, table.Parent[1][3].FromRound, "the mobility hop happens within round 1's own closure, not across a round boundary")
}

func TestRunHonorsCancellation(t *testing.T) {
	store := buildSimpleLineStore(t)
	in := Input{
		Store:         store,
		Stops:         store.AllStops(),
		AccessOptions: []access.Option{{StopID: 0, AccessMinutes: 0, AccessMode: access.AccessWalk}},
		DepartureTime: 475,
		ServiceID:     "weekday",
		Policy:        access.TransitOnly,
		MaxRounds:     6,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table := Run(ctx, in)
	require.NotNil(t, table)
	// No rounds should have executed beyond the cancellation check.
	assert.Equal(t, Infinity, table.Tau[1][2])
}
