// Package solver implements the round-based multimodal RAPTOR loop: a
// route-scan phase, an optional mobility-propagation phase, and a
// transfer-closure phase per round, updating a 2D label table indexed by
// (round, stop). Both the OTP-style integrated variant and the hybrid
// zone-based variant share this core.
package solver

import (
	"math"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Infinity marks an unreached label.
const Infinity = math.MaxInt32

// ParentKind tags how a label was produced, for reconstruction.
type ParentKind int

const (
	ParentNone ParentKind = iota
	ParentAccess
	ParentRouteRide
	ParentMobilityRide
	ParentWalkTransfer
)

// Parent records enough to reconstruct one leg of a journey.
type Parent struct {
	Kind ParentKind

	FromRound int
	FromStop  network.StopID

	// ParentRouteRide fields.
	RouteID   network.RouteID
	BoardPos  int
	AlightPos int
	TripIdx   int
	BoardTime int

	// ParentMobilityRide / ParentWalkTransfer fields.
	WalkMinutes float64
	VehicleMode string
	VehicleID   string

	// ParentAccess fields.
	AccessOption access.Option
}

// State is the non-time part of a label: accumulated cost and any
// currently-carried vehicle, kept as a struct parallel to Tau rather than
// folded into one polymorphic record, per the design notes.
type State struct {
	Cost    float64
	Carried *access.CarriedVehicle
	// LastRouteID is the route of the most recent route-ride leg, used to
	// decide whether a new ride requires a fresh fare charge (spec.md 3:
	// "fare is charged once per continuous transit stretch").
	LastRouteID network.RouteID
	HasLastRoute bool
}

// Table holds the per-(round, stop) label arrays for one solver run.
type Table struct {
	Rounds int
	Stops  int

	Tau    [][]int // minutes from midnight, Infinity = unreached
	States [][]State
	Parent [][]Parent
	marked []map[network.StopID]bool
}

// NewTable allocates a label table for the given number of rounds/stops.
func NewTable(rounds, stops int) *Table {
	t := &Table{Rounds: rounds, Stops: stops}
	t.Tau = make([][]int, rounds+1)
	t.States = make([][]State, rounds+1)
	t.Parent = make([][]Parent, rounds+1)
	t.marked = make([]map[network.StopID]bool, rounds+1)
	for k := 0; k <= rounds; k++ {
		t.Tau[k] = make([]int, stops)
		t.States[k] = make([]State, stops)
		t.Parent[k] = make([]Parent, stops)
		for s := range t.Tau[k] {
			t.Tau[k][s] = Infinity
		}
		t.marked[k] = make(map[network.StopID]bool)
	}
	return t
}

// Marked returns the set of stops marked in round k.
func (t *Table) Marked(k int) map[network.StopID]bool {
	return t.marked[k]
}

// Relax applies strict-improvement relaxation at (round, stop): only
// updates when newTau is strictly less than the current label, which
// guarantees acyclic parent chains (spec.md 4.5 "key algorithmic choices").
func (t *Table) Relax(round int, stop network.StopID, newTau int, state State, parent Parent) bool {
	if newTau < t.Tau[round][stop] {
		t.Tau[round][stop] = newTau
		t.States[round][stop] = state
		t.Parent[round][stop] = parent
		t.marked[round][stop] = true
		return true
	}
	return false
}

// CopyForward seeds round k from round k-1's best-known values, so a round
// that improves nothing still carries forward the prior round's labels
// (teacher's `copy(rounds[k], rounds[k-1])` step).
func (t *Table) CopyForward(k int) {
	copy(t.Tau[k], t.Tau[k-1])
	copy(t.States[k], t.States[k-1])
	copy(t.Parent[k], t.Parent[k-1])
}
