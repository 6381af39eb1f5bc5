package zone

import "time"

// RoutingStrategy is the per-query first/last-mile strategy the hybrid
// variant picks before invoking the solver, ported from the source's
// RoutingStrategy dataclass.
type RoutingStrategy struct {
	ZoneDistance        int
	Name                string
	MobilityWeight      float64
	TransitWeight       float64
	AllowDirectMobility bool
	CheckDirectTransit  bool
	MaxTransfers        int
}

// distanceStrategies mirrors the source's ZoneConfig.distance_strategies
// table: zone distance bucket -> (name, mobility_weight, transit_weight).
var distanceStrategies = map[int]struct {
	name                     string
	mobilityWeight, transitWeight float64
}{
	0: {"mobility_only", 0.9, 0.1},
	1: {"mobility_preferred", 0.7, 0.3},
	2: {"balanced", 0.5, 0.5},
	3: {"transit_preferred", 0.3, 0.7},
	4: {"transit_preferred", 0.2, 0.8},
	5: {"transit_only", 0.1, 0.9},
}

var defaultDistanceStrategy = struct {
	name                     string
	mobilityWeight, transitWeight float64
}{"transit_only", 0.05, 0.95}

// Thresholds and time-of-day adjustments, ported verbatim from
// ZoneConfig: mobility_only_threshold=2, mobility_preferred_threshold=4,
// rush_hour_penalty=0.7, late_night_bonus=1.3.
const (
	mobilityOnlyThreshold      = 2
	mobilityPreferredThreshold = 4
	rushHourPenalty            = 0.7
	lateNightBonus             = 1.3
)

// StrategySelector is the pluggable policy callable the design notes call
// for (spec.md 9: "expose the strategy selector as a pluggable policy
// callable rather than hard-coding it").
type StrategySelector func(zoneDistance int, clock time.Time) RoutingStrategy

// DefaultStrategySelector implements _get_routing_strategy: looks up the
// distance bucket, then applies the rush-hour penalty (07-09h, 18-20h) or
// late-night bonus (22h-05h) to the mobility weight, renormalizing against
// transit weight.
func DefaultStrategySelector(zoneDistance int, clock time.Time) RoutingStrategy {
	bucket := distanceStrategies[zoneDistance]
	if zoneDistance > 5 {
		bucket = defaultDistanceStrategy
	} else if _, ok := distanceStrategies[zoneDistance]; !ok {
		bucket = defaultDistanceStrategy
	}

	mobilityWeight := bucket.mobilityWeight
	hour := clock.Hour()
	switch {
	case (hour >= 7 && hour < 9) || (hour >= 18 && hour < 20):
		mobilityWeight *= rushHourPenalty
	case hour >= 22 || hour < 5:
		mobilityWeight *= lateNightBonus
		if mobilityWeight > 1 {
			mobilityWeight = 1
		}
	}
	transitWeight := 1 - mobilityWeight

	maxTransfers := 3
	if zoneDistance >= 5 {
		maxTransfers = 6
	} else if zoneDistance >= 3 {
		maxTransfers = 4
	}

	return RoutingStrategy{
		ZoneDistance:        zoneDistance,
		Name:                bucket.name,
		MobilityWeight:      mobilityWeight,
		TransitWeight:       transitWeight,
		AllowDirectMobility: zoneDistance <= mobilityOnlyThreshold,
		CheckDirectTransit:  zoneDistance > mobilityPreferredThreshold,
		MaxTransfers:        maxTransfers,
	}
}
