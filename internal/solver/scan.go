package solver

import (
	"context"
	"sort"

	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// cursor tracks the currently-boarded trip while scanning one route's stop
// sequence in order, the classic RAPTOR one-cursor-per-trip trick: a
// single O(|sequence|) pass per route per round rather than O(|sequence|^2).
type cursor struct {
	active    bool
	tripIdx   int
	boardStop network.StopID
	boardPos  int
	boardTime int
}

// routeScan implements spec.md 4.5 step 1. It mutates table in place for
// round k, given the stops marked in round k-1 and the serviceID filter
// (day type). store.RoutesThroughStop is the precomputed index (the teacher
// rebuilt this per round; here it is built once at Store construction).
func routeScan(ctx context.Context, store *network.Store, table *Table, k int, serviceID string) {
	routesToProcess := make(map[network.RouteID]network.StopID)
	for stopID := range table.Marked(k - 1) {
		for _, rid := range store.RoutesThroughStop(stopID) {
			if existing, ok := routesToProcess[rid]; ok {
				if pos, _ := store.StopPosition(rid, stopID); pos < mustPos(store, rid, existing) {
					routesToProcess[rid] = stopID
				}
			} else {
				routesToProcess[rid] = stopID
			}
		}
	}

	for rid, startStop := range routesToProcess {
		if ctx.Err() != nil {
			return
		}
		route, ok := store.Route(rid)
		if !ok {
			continue
		}
		tt := route.Timetable
		startPos, ok := store.StopPosition(rid, startStop)
		if !ok {
			continue
		}

		var cur cursor
		for pos := startPos; pos < len(route.Stops); pos++ {
			stopID := route.Stops[pos]

			if cur.active {
				tripIdx := cur.tripIdx
				arr := tt.Arr[pos][tripIdx]
				dep := tt.Dep[cur.boardPos][tripIdx]
				if arr >= dep && arr < table.Tau[k][stopID] {
					boardState := table.States[k-1][cur.boardStop]
					fareAdded := routeFare(route, boardState)
					newState := State{
						Cost:         boardState.Cost + fareAdded,
						Carried:      boardState.Carried,
						LastRouteID:  rid,
						HasLastRoute: true,
					}
					parent := Parent{
						Kind:      ParentRouteRide,
						FromRound: k - 1,
						FromStop:  cur.boardStop,
						RouteID:   rid,
						BoardPos:  cur.boardPos,
						AlightPos: pos,
						TripIdx:   tripIdx,
						BoardTime: cur.boardTime,
					}
					table.Relax(k, stopID, arr, newState, parent)
				}
			}

			prevArrival := table.Tau[k-1][stopID]
			if prevArrival < Infinity {
				// Any stop already reached by round k-1 re-evaluates the
				// earliest-boardable trip at its position and adopts (t, s)
				// as the current ride only if it improves the cursor (no
				// ride yet, or an earlier trip); otherwise the current ride
				// continues.
				if tripIdx, found := earliestTripAt(tt, pos, prevArrival, serviceID); found && (!cur.active || tripIdx < cur.tripIdx) {
					cur = cursor{active: true, tripIdx: tripIdx, boardStop: stopID, boardPos: pos, boardTime: tt.Dep[pos][tripIdx]}
				}
			}
		}
	}
}

// earliestTripAt finds the earliest trip departing at or after threshold
// minutes, restricted to serviceID, using binary search over the trip axis
// (spec.md 4.5 + REDESIGN FLAGS: precompute once, binary search, not a
// linear scan) since BuildTimetable sorts trips by first-stop departure
// and per-route schedules do not overtake.
func earliestTripAt(tt network.Timetable, pos int, threshold int, serviceID string) (int, bool) {
	n := tt.NumTrips()
	if n == 0 {
		return 0, false
	}
	deps := tt.Dep[pos]
	idx := sort.Search(n, func(i int) bool { return deps[i] >= threshold })
	for i := idx; i < n; i++ {
		if serviceID == "" || tt.ServiceIDs[i] == serviceID {
			return i, true
		}
	}
	return 0, false
}

// routeFare charges a base fare only when switching to a different route
// than the predecessor's (spec.md 3: "fare is charged once per continuous
// transit stretch"); continuing the same route costs nothing extra here
// (the base fare was already charged on first boarding).
func routeFare(route network.Route, boardState State) float64 {
	if boardState.HasLastRoute && boardState.LastRouteID == route.ID {
		return 0
	}
	return baseFareFor(route.ModeClass)
}

func baseFareFor(mode network.ModeClass) float64 {
	switch mode {
	case network.ModeBus, network.ModeMetro:
		return 1370
	case network.ModeBike:
		return 1000
	case network.ModeKickboard:
		return 1000
	case network.ModeEbike:
		return 490
	default:
		return 0
	}
}

func mustPos(store *network.Store, rid network.RouteID, stop network.StopID) int {
	pos, _ := store.StopPosition(rid, stop)
	return pos
}
