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

// transferClosure implements spec.md 4.5 step 3: for every stop newly
// improved in round k, propagate along its walk transfers, relaxing
// tau[k][neighbor] := min(tau[k][neighbor], tau[k][s] + walk_minutes), and,
// for multimodal policies, also relax onto any free-floating vehicle or
// dock reachable by a short hop from that stop (the same "top 5 outgoing
// targets" rule mobilityPropagation applies across the round boundary, here
// applied to every stop marked in round k, whether the route scan or the
// transfer phase reached it).
//
// Because Relax mutates table.marked[k] while we range over it, we
// snapshot the improved set first so the closure only ever chains one hop
// per call; the caller loops this until no further improvement (saturating
// the closure, per testable property 6), matching the teacher's
// "transitMarked" snapshot-then-iterate pattern.
func transferClosure(ctx context.Context, store *network.Store, stops []network.Stop, table *Table, k int, policy access.Policy, reach *mobility.ReachabilityIndex, snapshot *mobility.Snapshot, params modeparams.Table) bool {
	improved := snapshotMarked(table, k)
	any := false
	for _, stopID := range improved {
		if ctx.Err() != nil {
			return any
		}
		arrival := table.Tau[k][stopID]
		state := table.States[k][stopID]
		for _, tr := range store.WalkTransfers(stopID) {
			newTau := arrival + int(tr.WalkMinutes)
			if table.Relax(k, tr.ToStop, newTau, State{Cost: state.Cost, Carried: state.Carried}, Parent{
				Kind:        ParentWalkTransfer,
				FromRound:   k,
				FromStop:    stopID,
				WalkMinutes: tr.WalkMinutes,
			}) {
				any = true
			}
		}

		if relaxShortMobilityHops(store, stops, table, k, stopID, policy, reach, snapshot, params) {
			any = true
		}
	}
	return any
}

// relaxShortMobilityHops implements spec.md 4.5 step 3's mobility-hop
// relaxation: any stop marked in round k, including one reached only during
// transfer closure, picks up a free-floating vehicle or dock within walking
// distance the same way mobilityPropagation does for round k-1 labels.
// Parent records use
// FromRound: k since this happens within round k's own closure, not across
// the k-1 -> k round boundary mobilityPropagation bridges.
func relaxShortMobilityHops(store *network.Store, stops []network.Stop, table *Table, k int, stopID network.StopID, policy access.Policy, reach *mobility.ReachabilityIndex, snapshot *mobility.Snapshot, params modeparams.Table) bool {
	if policy != access.Multimodal || snapshot == nil || k > maxMobilityRound {
		return false
	}

	origin := stops[stopID]
	originPoint := geo.Point{Lat: origin.Lat, Lon: origin.Lon}
	baseTau := table.Tau[k][stopID]
	baseState := table.States[k][stopID]

	var targets []access.Option

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

	any := false
	for _, opt := range targets {
		newTau := baseTau + int(opt.AccessMinutes)
		newState := State{Cost: baseState.Cost + opt.AccessCost, Carried: opt.InitialState}
		if table.Relax(k, opt.StopID, newTau, newState, Parent{
			Kind:        ParentMobilityRide,
			FromRound:   k,
			FromStop:    stopID,
			WalkMinutes: opt.AccessMinutes,
			VehicleMode: string(opt.InitialState.Mode),
			VehicleID:   opt.InitialState.VehicleID,
		}) {
			any = true
		}
	}
	return any
}

// SaturateTransferClosure repeatedly applies transferClosure until it
// stops improving any label, per testable property 6 ("no walk-transfer
// relaxation improves any tau[k][.] after the transfer phase of round k
// completes").
func SaturateTransferClosure(ctx context.Context, store *network.Store, stops []network.Stop, table *Table, k int, policy access.Policy, reach *mobility.ReachabilityIndex, snapshot *mobility.Snapshot, params modeparams.Table) {
	for transferClosure(ctx, store, stops, table, k, policy, reach, snapshot, params) {
		if ctx.Err() != nil {
			return
		}
	}
}

func snapshotMarked(table *Table, k int) []network.StopID {
	marked := table.Marked(k)
	out := make([]network.StopID, 0, len(marked))
	for s := range marked {
		out = append(out, s)
	}
	return out
}
