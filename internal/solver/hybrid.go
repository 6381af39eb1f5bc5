package solver

import (
	"context"

	"github.com/antigravity/gangnam-multimodal/internal/access"
)

// Default round budgets per policy, per spec.md 4.5's termination rule:
// "K = 3 for multimodal hybrid, 6 for transit-only".
const (
	HybridMultimodalRounds  = 3
	HybridTransitOnlyRounds = 6
)

// RunHybrid executes the zone-based hybrid variant, grounded on
// PART2_HYBRID.py's find_routes/_find_hybrid_routes: an explicit
// mobility-propagation phase runs alongside the plain transit route scan
// (unlike RunOTP, which folds mobility into virtual routes), gated by the
// caller's zone.StrategySelector decision on whether to even invoke the
// solver for this query.
func RunHybrid(ctx context.Context, in Input) *Table {
	if in.Policy == access.Multimodal {
		in.MaxRounds = HybridMultimodalRounds
	} else {
		in.MaxRounds = HybridTransitOnlyRounds
	}
	return Run(ctx, in)
}
