package solver

import (
	"context"
	"sort"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// maxMobilityRound is the round cutoff beyond which mobility propagation
// is disabled to bound fan-out, per spec.md 4.5 step 2.
const maxMobilityRound = 2

// mobilityFanOut caps the number of reachable targets relaxed per option,
// per spec.md 4.5's "top 5 outgoing targets".
const mobilityFanOut = 5

// mobilityRoundPenaltyMinutes is added per round above the first to
// discourage chains of micromobility rides over genuine transit.
const mobilityRoundPenaltyMinutes = 3

// mobilityPickupRadiusMeters bounds how far a traveler will walk to a
// free-floating vehicle or dock during in-journey mobility propagation.
const mobilityPickupRadiusMeters = 300

// mobilityPropagation implements spec.md 4.5 step 2. The caller invokes it
// only for multimodal policies; it returns without relaxing anything for
// k > maxMobilityRound or a nil snapshot.
func mobilityPropagation(ctx context.Context, store *network.Store, stops []network.Stop, table *Table, k int, reach *mobility.ReachabilityIndex, snapshot *mobility.Snapshot, params modeparams.Table) {
	if k > maxMobilityRound || snapshot == nil {
		return
	}
	penalty := 0
	if k > 1 {
		penalty = mobilityRoundPenaltyMinutes * (k - 1)
	}

	for stopID := range table.Marked(k - 1) {
		if ctx.Err() != nil {
			return
		}
		origin := stops[stopID]
		originPoint := geo.Point{Lat: origin.Lat, Lon: origin.Lon}
		baseTau := table.Tau[k-1][stopID]
		baseState := table.States[k-1][stopID]

		var targets []access.Option

		// Continue with the carried vehicle, if any.
		if baseState.Carried != nil {
			reachable := reach.ReachableStopsByVehicle(originPoint, baseState.Carried.Mode, baseState.Carried.BatteryPct)
			for _, r := range reachable {
				targets = append(targets, access.Option{
					StopID: r.StopID, AccessMinutes: r.TravelMinutes, AccessCost: 0,
					InitialState: baseState.Carried,
				})
			}
		}

		// Pick up a nearby free-floating vehicle.
		for _, v := range snapshot.VehiclesNear(originPoint, mobilityPickupRadiusMeters, "") {
			walkMin := geo.HaversineMeters(originPoint, geo.Point{Lat: v.Lat, Lon: v.Lon}) / modeparams.WalkMetersPerMinute
			reachable := reach.ReachableStopsByVehicle(geo.Point{Lat: v.Lat, Lon: v.Lon}, v.Mode, v.BatteryPct)
			for _, r := range reachable {
				targets = append(targets, access.Option{
					StopID: r.StopID, AccessMinutes: walkMin + r.TravelMinutes, AccessCost: r.Cost,
					InitialState: &access.CarriedVehicle{Mode: v.Mode, VehicleID: v.ID, BatteryPct: v.BatteryPct},
				})
			}
		}

		// Rent at a nearby dock.
		for _, st := range snapshot.StationsNear(originPoint, mobilityPickupRadiusMeters, true, false) {
			walkMin := geo.HaversineMeters(originPoint, geo.Point{Lat: st.Lat, Lon: st.Lon})/modeparams.WalkMetersPerMinute + 1
			reachable := reach.ReachableStopsByVehicle(geo.Point{Lat: st.Lat, Lon: st.Lon}, modeparams.DockBike, 100)
			for _, r := range reachable {
				targets = append(targets, access.Option{
					StopID: r.StopID, AccessMinutes: walkMin + r.TravelMinutes, AccessCost: r.Cost,
					InitialState: &access.CarriedVehicle{Mode: modeparams.DockBike, VehicleID: st.ID, BatteryPct: 100, MustReturnToStation: true},
				})
			}
		}

		sort.Slice(targets, func(i, j int) bool { return targets[i].AccessMinutes < targets[j].AccessMinutes })
		if len(targets) > mobilityFanOut {
			targets = targets[:mobilityFanOut]
		}

		for _, opt := range targets {
			newTau := baseTau + int(opt.AccessMinutes) + penalty
			newState := State{Cost: baseState.Cost + opt.AccessCost, Carried: opt.InitialState}
			table.Relax(k, opt.StopID, newTau, newState, Parent{
				Kind:        ParentMobilityRide,
				FromRound:   k - 1,
				FromStop:    stopID,
				WalkMinutes: opt.AccessMinutes,
				VehicleMode: string(opt.InitialState.Mode),
				VehicleID:   opt.InitialState.VehicleID,
			})
		}
	}
}
