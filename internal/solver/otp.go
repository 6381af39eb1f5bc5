package solver

import (
	"context"

	"github.com/antigravity/gangnam-multimodal/internal/access"
)

// RunOTP executes the OTP-style integrated variant, grounded on
// PART2_OTP.py's _run_integrated_raptor: this is Run with
// K = max_transfers + 1 and no separate mobility phase, so mobility enters
// the search only as virtual routes that in.Store itself carries (the kind
// mobility.BuildVirtualNetwork produces). Nothing in this module merges
// such routes into a Store: the store built by internal/store holds transit
// routes only, so over that store RunOTP finds transit journeys only.
func RunOTP(ctx context.Context, in Input, maxTransfers int) *Table {
	in.MaxRounds = maxTransfers + 1
	in.Policy = access.TransitOnly // mobility already folded into virtual routes; avoid double-propagation
	return Run(ctx, in)
}
