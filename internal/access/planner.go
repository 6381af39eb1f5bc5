// Package access implements the access/egress planner: for an origin (or
// destination) and a policy, enumerate candidate boarding stops with
// (time, cost, mode, carried-vehicle state).
package access

import (
	"sort"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Policy selects which branches the planner considers.
type Policy int

const (
	TransitOnly Policy = iota
	Multimodal
)

// CarriedVehicle is the state a label carries forward once a traveler has
// picked up a mobility unit, per spec.md 3.
type CarriedVehicle struct {
	Mode                modeparams.Mode
	VehicleID           string
	BatteryPct          float64
	MustReturnToStation bool
}

// AccessMode tags how an Option reaches its stop.
type AccessMode string

const (
	AccessWalk        AccessMode = "walk"
	AccessFreeFloating AccessMode = "free_floating"
	AccessDock        AccessMode = "dock"
)

// Option is one candidate boarding (or alighting, for egress) point.
type Option struct {
	StopID        network.StopID
	AccessMinutes float64
	AccessMode    AccessMode
	AccessCost    float64
	InitialState  *CarriedVehicle // nil if no vehicle is carried
}

// Limits bounds the planner's search, from the caller's preference block.
type Limits struct {
	MaxWalkMeters  float64
	PickupRadiusM  float64
}

// topN is the access-option cap from spec.md 4.4.
const topN = 30

// Planner enumerates AccessOptions against a fixed stop table, mobility
// snapshot, and mode-parameters table.
type Planner struct {
	stops      []network.Stop
	walkIndex  *geo.CellIndex
	reach      *mobility.ReachabilityIndex
	params     modeparams.Table
}

// NewPlanner builds a planner over the given stop table, bucketing every
// stop by position into its own cell index for nearby-stop queries.
func NewPlanner(stops []network.Stop, reach *mobility.ReachabilityIndex, params modeparams.Table) *Planner {
	idx := geo.NewCellIndex()
	for _, s := range stops {
		idx.Insert(int64(s.ID), geo.Point{Lat: s.Lat, Lon: s.Lon})
	}
	return &Planner{stops: stops, walkIndex: idx, reach: reach, params: params}
}

// ReachabilityIndex exposes the planner's reachability index so other
// layers (the solver's mobility-propagation and transfer-closure phases)
// can share the same memoized vehicle-reachability queries rather than
// building a second index.
func (p *Planner) ReachabilityIndex() *mobility.ReachabilityIndex {
	return p.reach
}

// Access enumerates boarding options from an origin point.
func (p *Planner) Access(origin geo.Point, policy Policy, limits Limits, snapshot *mobility.Snapshot) []Option {
	var options []Option

	options = append(options, p.walkOptions(origin, limits)...)

	if policy == Multimodal && snapshot != nil {
		options = append(options, p.freeFloatingOptions(origin, limits, snapshot)...)
		options = append(options, p.dockOptions(origin, limits, snapshot)...)
	}

	sort.Slice(options, func(i, j int) bool { return options[i].AccessMinutes < options[j].AccessMinutes })
	if len(options) > topN {
		options = options[:topN]
	}
	return options
}

// Egress is symmetric to Access: the same three branches, seeded from the
// destination, since reaching a destination stop by walk/vehicle takes the
// same shape as leaving a stop by walk/vehicle.
func (p *Planner) Egress(destination geo.Point, policy Policy, limits Limits, snapshot *mobility.Snapshot) []Option {
	return p.Access(destination, policy, limits, snapshot)
}

func (p *Planner) walkOptions(origin geo.Point, limits Limits) []Option {
	ringSize := int(limits.MaxWalkMeters/170.0) + 2
	candidates := p.walkIndex.CandidatesNear(origin, ringSize)
	var out []Option
	for _, id := range candidates {
		stop := p.stops[id]
		d := geo.HaversineMeters(origin, geo.Point{Lat: stop.Lat, Lon: stop.Lon})
		if d > limits.MaxWalkMeters {
			continue
		}
		minutes := d / modeparams.WalkMetersPerMinute
		out = append(out, Option{StopID: stop.ID, AccessMinutes: minutes, AccessMode: AccessWalk})
	}
	return out
}

func (p *Planner) freeFloatingOptions(origin geo.Point, limits Limits, snapshot *mobility.Snapshot) []Option {
	var out []Option
	for _, v := range snapshot.VehiclesNear(origin, limits.PickupRadiusM, "") {
		walkDist := geo.HaversineMeters(origin, geo.Point{Lat: v.Lat, Lon: v.Lon})
		walkMinutes := walkDist / modeparams.WalkMetersPerMinute

		reachable := p.reach.ReachableStopsByVehicle(geo.Point{Lat: v.Lat, Lon: v.Lon}, v.Mode, v.BatteryPct)
		for _, r := range reachable {
			distanceKm := r.TravelMinutes * p.params[v.Mode].SpeedKmh / 60
			remainingBattery := mobility.BatteryAfterTravel(p.params, v.Mode, v.BatteryPct, distanceKm)
			out = append(out, Option{
				StopID:        r.StopID,
				AccessMinutes: walkMinutes + r.TravelMinutes,
				AccessMode:    AccessFreeFloating,
				AccessCost:    r.Cost,
				InitialState: &CarriedVehicle{
					Mode:                v.Mode,
					VehicleID:           v.ID,
					BatteryPct:          remainingBattery,
					MustReturnToStation: false,
				},
			})
		}
	}
	return out
}

func (p *Planner) dockOptions(origin geo.Point, limits Limits, snapshot *mobility.Snapshot) []Option {
	const rentalOverheadMinutes = 1.0
	var out []Option
	for _, st := range snapshot.StationsNear(origin, limits.PickupRadiusM, true, false) {
		walkDist := geo.HaversineMeters(origin, geo.Point{Lat: st.Lat, Lon: st.Lon})
		walkMinutes := walkDist/modeparams.WalkMetersPerMinute + rentalOverheadMinutes

		reachable := p.reach.ReachableStopsByVehicle(geo.Point{Lat: st.Lat, Lon: st.Lon}, modeparams.DockBike, 100)
		for _, r := range reachable {
			out = append(out, Option{
				StopID:        r.StopID,
				AccessMinutes: walkMinutes + r.TravelMinutes,
				AccessMode:    AccessDock,
				AccessCost:    r.Cost,
				InitialState: &CarriedVehicle{
					Mode:                modeparams.DockBike,
					VehicleID:           st.ID,
					BatteryPct:          100,
					MustReturnToStation: true,
				},
			})
		}
	}
	return out
}
