package geo

// Mode-specific detour factors and cutoffs for the road-distance fallback,
// ported from the original's _get_road_distance constants.
const (
	WalkDetourFactor   = 1.2
	VehicleDetourFactor = 1.3

	WalkShortcutMeters = 300.0 // below this, skip graph snapping, use haversine*detour directly
)

// RoadDistance is the geo kernel's single exported distance primitive: it
// tries a road-graph shortest path and falls back to haversine times a
// mode-specific detour factor when the graph is absent, the endpoints are
// farther apart than cutoffMeters, or no path is found within the explored
// budget.
//
// Results are not cached: every call recomputes the distance, including the
// nearest-node scans and the Dijkstra search.
func RoadDistance(graph *Graph, a, b Point, cutoffMeters float64, isWalk bool, maxExplored int) float64 {
	straight := HaversineMeters(a, b)

	detour := VehicleDetourFactor
	if isWalk {
		detour = WalkDetourFactor
		if straight <= WalkShortcutMeters {
			return straight * detour
		}
	}

	if graph.NodeCount() == 0 || straight > cutoffMeters {
		return straight * detour
	}

	na, ok := graph.NearestNode(a)
	if !ok {
		return straight * detour
	}
	nb, ok := graph.NearestNode(b)
	if !ok {
		return straight * detour
	}

	if d, ok := graph.ShortestPath(na.ID, nb.ID, maxExplored); ok {
		return d
	}
	return straight * detour
}
