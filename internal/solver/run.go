package solver

import (
	"context"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Input bundles everything one solver run needs. All fields are read-only
// for the duration of the call, per the concurrency model in spec.md 5:
// a single query is single-threaded and synchronous, and shares only
// immutable inputs with concurrent queries.
type Input struct {
	Store         *network.Store
	Stops         []network.Stop
	AccessOptions []access.Option
	DepartureTime int // minutes from midnight
	ServiceID     string
	Policy        access.Policy
	MaxRounds     int
	Reach         *mobility.ReachabilityIndex
	Snapshot      *mobility.Snapshot
	Params        modeparams.Table
}

// Run executes the round-based solver and returns the filled label table.
// It honors ctx cancellation at route-scan and mobility-phase granularity
// (spec.md 5): on cancellation it returns the table as far as it got,
// which the journey builder can still walk for a Pareto-optimal partial
// result (spec.md 7's cancellation error kind).
func Run(ctx context.Context, in Input) *Table {
	table := NewTable(in.MaxRounds, in.Store.NumStops())

	for _, opt := range in.AccessOptions {
		newTau := in.DepartureTime + int(opt.AccessMinutes)
		table.Relax(0, opt.StopID, newTau, State{Cost: opt.AccessCost, Carried: opt.InitialState}, Parent{
			Kind:         ParentAccess,
			AccessOption: opt,
		})
	}

	for k := 1; k <= in.MaxRounds; k++ {
		if ctx.Err() != nil {
			return table
		}
		table.CopyForward(k)

		routeScan(ctx, in.Store, table, k, in.ServiceID)

		if in.Policy == access.Multimodal && ctx.Err() == nil {
			mobilityPropagation(ctx, in.Store, in.Stops, table, k, in.Reach, in.Snapshot, in.Params)
		}

		SaturateTransferClosure(ctx, in.Store, in.Stops, table, k, in.Policy, in.Reach, in.Snapshot, in.Params)

		if len(table.Marked(k)) == 0 {
			break
		}
	}

	return table
}
