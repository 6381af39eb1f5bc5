package mobility

import (
	"fmt"
	"sort"

	"github.com/antigravity/gangnam-multimodal/internal/cachestore"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// ReachableStop is one result of ReachableStopsByVehicle.
type ReachableStop struct {
	StopID        network.StopID
	TravelMinutes float64
	Cost          float64
}

// maxExploredRoadNodes bounds the Dijkstra fallback inside reachability
// queries so a single vehicle-reachability call cannot blow the query
// budget even on a dense road graph.
const maxExploredRoadNodes = 20000

// maxReachableResults caps fan-out per spec.md 4.3 ("top 50 by distance").
const maxReachableResults = 50

// innerRoadFraction is the fraction of the great-circle-sorted candidate
// list that gets the more expensive road-distance refinement; the rest
// uses haversine * detour, per spec.md 4.3's "inner 70% / outer tail" rule.
const innerRoadFraction = 0.7

// reachabilityCacheKey quantizes the memoization key per spec.md 5.
type reachabilityCacheKey struct {
	quantized    [2]int64
	mode         modeparams.Mode
	batteryBucket int // battery_pct rounded down to a multiple of 10
}

// ReachabilityIndex answers "where can this vehicle reach" queries against
// a fixed stop table, road graph, and mode-parameters table, memoizing
// results per spec.md 5's mobility_reachable_cache.
type ReachabilityIndex struct {
	stops   []network.Stop
	graph   *geo.Graph
	params  modeparams.Table
	cache   *cachestore.BoundedCache[reachabilityCacheKey, []ReachableStop]
}

// NewReachabilityIndex builds an index over the given stop table.
func NewReachabilityIndex(stops []network.Stop, graph *geo.Graph, params modeparams.Table, cacheCapacity int) *ReachabilityIndex {
	return &ReachabilityIndex{
		stops:  stops,
		graph:  graph,
		params: params,
		cache:  cachestore.NewBoundedCache[reachabilityCacheKey, []ReachableStop](cacheCapacity),
	}
}

// ReachableStopsByVehicle implements spec.md 4.3's reachable_stops_by_vehicle.
func (idx *ReachabilityIndex) ReachableStopsByVehicle(origin geo.Point, mode modeparams.Mode, batteryPct float64) []ReachableStop {
	key := reachabilityCacheKey{
		quantized:     geo.QuantizeKey(origin),
		mode:          mode,
		batteryBucket: int(batteryPct/10) * 10,
	}
	if cached, ok := idx.cache.Get(key); ok {
		return cached
	}

	rangeM := idx.params.ReachableRangeMeters(mode, batteryPct)
	if rangeM <= 0 {
		idx.cache.Set(key, nil)
		return nil
	}

	type candidate struct {
		stop      network.Stop
		straight  float64
	}
	var candidates []candidate
	for _, st := range idx.stops {
		d := geo.HaversineMeters(origin, geo.Point{Lat: st.Lat, Lon: st.Lon})
		if d <= rangeM {
			candidates = append(candidates, candidate{st, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].straight < candidates[j].straight })

	innerCount := int(float64(len(candidates)) * innerRoadFraction)
	speedMPerMin := idx.params[mode].SpeedKmh * 1000 / 60
	fare := idx.params[mode].BaseFare

	results := make([]ReachableStop, 0, len(candidates))
	for i, c := range candidates {
		var distanceM float64
		if i < innerCount {
			distanceM = geo.RoadDistance(idx.graph, origin, geo.Point{Lat: c.stop.Lat, Lon: c.stop.Lon}, rangeM, false, maxExploredRoadNodes)
		} else {
			distanceM = c.straight * geo.VehicleDetourFactor
		}
		if distanceM > rangeM {
			continue
		}
		minutes := 0.0
		if speedMPerMin > 0 {
			minutes = distanceM / speedMPerMin
		}
		cost := fare + idx.params[mode].PerMinuteFare*minutes
		results = append(results, ReachableStop{StopID: c.stop.ID, TravelMinutes: minutes, Cost: cost})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].TravelMinutes < results[j].TravelMinutes })
	if len(results) > maxReachableResults {
		results = results[:maxReachableResults]
	}

	idx.cache.Set(key, results)
	return results
}

// BatteryAfterTravel subtracts consumption for the given mode over
// distanceKm, clamped to zero.
func BatteryAfterTravel(params modeparams.Table, mode modeparams.Mode, batteryPct, distanceKm float64) float64 {
	remaining := batteryPct - params[mode].BatteryPctPerKm*distanceKm
	if remaining < 0 {
		return 0
	}
	return remaining
}

// String implements fmt.Stringer for debug logging of cache keys.
func (k reachabilityCacheKey) String() string {
	return fmt.Sprintf("%v/%s/%d", k.quantized, k.mode, k.batteryBucket)
}
