// Package network is the static network store: an immutable, indexed view
// of stops, routes, per-route stop sequences, per-route timetables, and
// precomputed walk transfers. It exposes no mutation API to the solver.
package network

// StopID, RouteID, TripID are dense integer indices assigned at load time,
// kept distinct from the opaque external string ids carried alongside them
// (spec.md "identifiers are opaque strings; for solver speed each stop also
// has a dense integer index").
type StopID int32
type RouteID int32
type TripID int32

// Kind is a stop's closed-sum mode tag; collapses "which mode" into a table
// lookup instead of type-per-mode polymorphism.
type Kind string

const (
	KindBus             Kind = "bus"
	KindMetro           Kind = "metro"
	KindBikeDock        Kind = "bike_dock"
	KindKickboardVirtual Kind = "kickboard_virtual"
	KindEbikeVirtual    Kind = "ebike_virtual"
)

// ModeClass is a route's closed-sum mode tag.
type ModeClass string

const (
	ModeBus       ModeClass = "bus"
	ModeMetro     ModeClass = "metro"
	ModeBike      ModeClass = "bike"
	ModeKickboard ModeClass = "kickboard"
	ModeEbike     ModeClass = "ebike"
)

// Stop is a boarding/alighting point, transit or mobility-virtual.
type Stop struct {
	ID      StopID
	ExtID   string
	Name    string
	Lat     float64
	Lon     float64
	Kind    Kind
	ZoneTag string
}

// Route is an ordered sequence of stops served by one or more trips.
type Route struct {
	ID        RouteID
	ShortName string
	LongName  string
	ModeClass ModeClass
	Stops     []StopID
	Trips     []Trip
	// Timetable holds the same data as Trips in dep[s][t]/arr[s][t] form,
	// built once at load for the solver's binary-search boarding step.
	Timetable Timetable
}

// Trip is one scheduled run of a route, used during load to build the
// Timetable matrices; the solver reads Timetable, not Trips, on the hot
// path.
type Trip struct {
	ID        TripID
	ServiceID string
	StopTimes []StopTime // parallel to Route.Stops
}

// StopTime is a single (position, trip) timetable entry in minutes from
// midnight. Trips with an arr<dep row or a non-monotone position are a
// data-inconsistency and are dropped at load, not carried into Timetable.
type StopTime struct {
	Departure int
	Arrival   int
}

// Timetable is the per-route S x T matrix pair described in spec.md: S
// stop positions, T trips, both indexed [position][tripIndex].
//
// Invariant: for every trip t, Dep[s][t] <= Dep[s+1][t] and
// Arr[s][t] <= Arr[s+1][t]. The loader enforces this by skipping
// offending trips rather than patching them.
type Timetable struct {
	Dep        [][]int // [stopPos][tripIdx]
	Arr        [][]int
	ServiceIDs []string // [tripIdx], parallel to the trip axis
}

// NumTrips reports the trip-axis width.
func (t Timetable) NumTrips() int {
	if len(t.Dep) == 0 {
		return 0
	}
	return len(t.Dep[0])
}

// Transfer is a directed walk-transfer edge; the loader inserts both
// directions so the in-memory representation stays symmetric without
// requiring callers to special-case direction.
type Transfer struct {
	ToStop      StopID
	WalkMinutes float64
}
