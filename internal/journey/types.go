// Package journey implements parent-pointer reconstruction, leg merging,
// deduplication, Pareto filtering, user-weighted scoring, and top-K
// selection over a filled solver.Table.
package journey

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// LegType is one of the five leg kinds spec.md 6 names.
type LegType string

const (
	LegAccess   LegType = "access"
	LegTransit  LegType = "transit"
	LegMobility LegType = "mobility"
	LegTransfer LegType = "transfer"
	LegEgress   LegType = "egress"
)

// Leg is one segment of a reconstructed journey.
type Leg struct {
	Type       LegType
	FromStop   network.Stop
	ToStop     network.Stop
	StartMin   int
	EndMin     int
	RouteID    network.RouteID
	RouteName  string
	Mode       string
	WalkMeters float64
	Cost       float64
	VehicleID  string
	// Geometry is a GeoJSON LineString from FromStop to ToStop, filled in
	// by ToJourney so API responses can render each leg on a map without
	// the caller re-deriving it from the stop coordinates.
	Geometry *geojson.Geometry
}

// Duration returns the leg's length in minutes.
func (l Leg) Duration() int { return l.EndMin - l.StartMin }

// Candidate is one end-to-end reconstructed journey before dedup/filtering.
type Candidate struct {
	Legs []Leg

	DepartureMin int
	ArrivalMin   int
	TotalTimeMin int
	TotalCost    float64
	// Transfers counts route switches (a transit leg whose route differs
	// from the previous transit leg), not the first boarding, plus one per
	// mobility leg. It mixes these two kinds of hop into one counter,
	// exactly as the hybrid variant's source did; two journeys with
	// different meanings behind this count can end up numerically equal.
	// Kept as-is per the open-question decision not to split the counter.
	Transfers        int
	WalkMeters        float64
	UsedMobilityModes []string
}

// Preference is the caller-supplied weighting block from spec.md 6.
type Preference struct {
	WeightTime      float64
	WeightTransfers float64
	WeightWalk      float64
	WeightCost      float64

	MobilityPreference map[string]float64 // keyed by mobility leg mode (dock_bike/kickboard/ebike), in [0,1]

	MaxWalkDistanceM float64
	MaxTotalTimeMin  int
	MaxTransfers     int
}

// Journey is the final output shape from spec.md 6.
type Journey struct {
	DepartureTime     string
	ArrivalTime       string
	TotalTime         int
	TotalCost         float64
	Transfers         int
	TotalWalkDistance float64
	UsedMobilityModes []string
	Legs              []Leg
}
