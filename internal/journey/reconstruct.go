package journey

import (
	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/network"
	"github.com/antigravity/gangnam-multimodal/internal/solver"
)

// EmitCandidates implements spec.md 4.6's candidate emission + parent-chain
// reconstruction + leg merging. For every egress option whose stop has a
// finite label at or after departureMin, in any round, it walks the parent
// chain back to an access parent, builds one leg per parent record,
// prepends the access leg, and appends the egress leg.
func EmitCandidates(table *solver.Table, store *network.Store, egressOptions []access.Option, departureMin int) []Candidate {
	var candidates []Candidate

	for _, egress := range egressOptions {
		for k := 0; k <= table.Rounds; k++ {
			tau := table.Tau[k][egress.StopID]
			if tau == solver.Infinity || tau < departureMin {
				continue
			}
			legs, ok := reconstructChain(table, store, k, egress.StopID)
			if !ok {
				continue
			}
			legs = mergeLegs(legs)

			egressLeg := Leg{
				Type:       LegEgress,
				StartMin:   tau,
				EndMin:     tau + int(egress.AccessMinutes),
				WalkMeters: walkMetersFromMinutes(egress),
				Cost:       egress.AccessCost,
			}
			legs = append(legs, egressLeg)

			cand := candidateFromLegs(legs)
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// reconstructChain walks parent[k][stop] backwards to an access parent,
// returning legs in forward (chronological) order, mirroring the teacher's
// raptor.go prepend-as-you-go reconstruction loop but generalized over all
// four parent kinds instead of just {transit, walk}.
func reconstructChain(table *solver.Table, store *network.Store, startRound int, startStop network.StopID) ([]Leg, bool) {
	var legs []Leg

	k := startRound
	stop := startStop
	steps := 0
	maxSteps := table.Rounds + 2 // acyclic reconstruction bound, testable property 3

	for {
		steps++
		if steps > maxSteps {
			return nil, false // invariant broken: cyclic parent chain
		}

		// Skip rounds where this stop's label did not change, same as the
		// teacher's `if rounds[k][currentStop] == rounds[k-1][currentStop] { continue }`.
		if k > 0 && table.Tau[k][stop] == table.Tau[k-1][stop] {
			k--
			continue
		}

		parent := table.Parent[k][stop]
		switch parent.Kind {
		case solver.ParentAccess:
			accessLeg := Leg{
				Type:     LegAccess,
				ToStop:   mustStop(store, stop),
				StartMin: table.Tau[k][stop] - int(parent.AccessOption.AccessMinutes),
				EndMin:   table.Tau[k][stop],
				Mode:     string(parent.AccessOption.AccessMode),
				Cost:     parent.AccessOption.AccessCost,
			}
			legs = append([]Leg{accessLeg}, legs...)
			return legs, true

		case solver.ParentRouteRide:
			route, _ := store.Route(parent.RouteID)
			leg := Leg{
				Type:      LegTransit,
				FromStop:  mustStop(store, parent.FromStop),
				ToStop:    mustStop(store, stop),
				StartMin:  parent.BoardTime,
				EndMin:    table.Tau[k][stop],
				RouteID:   parent.RouteID,
				RouteName: route.ShortName,
				Mode:      string(route.ModeClass),
			}
			legs = append([]Leg{leg}, legs...)
			stop = parent.FromStop
			k = parent.FromRound

		case solver.ParentMobilityRide:
			leg := Leg{
				Type:      LegMobility,
				FromStop:  mustStop(store, parent.FromStop),
				ToStop:    mustStop(store, stop),
				StartMin:  table.Tau[k][stop] - int(parent.WalkMinutes),
				EndMin:    table.Tau[k][stop],
				Mode:      parent.VehicleMode,
				VehicleID: parent.VehicleID,
			}
			legs = append([]Leg{leg}, legs...)
			stop = parent.FromStop
			k = parent.FromRound

		case solver.ParentWalkTransfer:
			leg := Leg{
				Type:       LegTransfer,
				FromStop:   mustStop(store, parent.FromStop),
				ToStop:     mustStop(store, stop),
				StartMin:   table.Tau[k][stop] - int(parent.WalkMinutes),
				EndMin:     table.Tau[k][stop],
				WalkMeters: parent.WalkMinutes * 80,
			}
			legs = append([]Leg{leg}, legs...)
			stop = parent.FromStop
			k = parent.FromRound

		default:
			return nil, false
		}
	}
}

func mustStop(store *network.Store, id network.StopID) network.Stop {
	s, _ := store.StopByID(id)
	return s
}

func walkMetersFromMinutes(opt access.Option) float64 {
	if opt.AccessMode == access.AccessWalk {
		return opt.AccessMinutes * 80
	}
	return 0
}

// CandidateFromLegs exports candidateFromLegs for callers that build legs
// outside of EmitCandidates' parent-chain walk, such as the hybrid variant's
// direct-mobility short-circuit.
func CandidateFromLegs(legs []Leg) Candidate {
	return candidateFromLegs(legs)
}

func candidateFromLegs(legs []Leg) Candidate {
	if len(legs) == 0 {
		return Candidate{}
	}
	c := Candidate{Legs: legs, DepartureMin: legs[0].StartMin, ArrivalMin: legs[len(legs)-1].EndMin}
	c.TotalTimeMin = c.ArrivalMin - c.DepartureMin

	lastRoute := network.RouteID(-1)
	hasRoute := false
	mobilitySeen := make(map[string]bool)

	for _, l := range legs {
		c.TotalCost += l.Cost
		c.WalkMeters += l.WalkMeters
		switch l.Type {
		case LegTransit:
			if hasRoute && lastRoute != l.RouteID {
				c.Transfers++
			}
			lastRoute = l.RouteID
			hasRoute = true
		case LegMobility:
			c.Transfers++
			if !mobilitySeen[l.Mode] {
				mobilitySeen[l.Mode] = true
				c.UsedMobilityModes = append(c.UsedMobilityModes, l.Mode)
			}
		}
	}
	return c
}
