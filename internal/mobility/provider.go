package mobility

import "context"

// Provider supplies one GBFS-style feed's worth of inventory. Live
// ingestion from any concrete provider (Seoul's station-based bike share,
// a free-floating kickboard operator) is out of scope for this module,
// but the interface itself is carried forward from the source's
// per-provider config loop so a caller-supplied implementation can feed a
// Layer without the solver or mobility queries needing to know which
// upstream produced the data.
type Provider interface {
	// Name identifies the provider, e.g. "seoul_bike" or "swing".
	Name() string
	// Fetch returns the provider's current vehicles and/or stations.
	Fetch(ctx context.Context) (vehicles []Vehicle, stations []Station, err error)
}

// MergeSnapshots combines snapshots from multiple providers into one,
// tagging entries by their originating provider (already set on each
// Vehicle/Station by the Provider implementation).
func MergeSnapshots(snapshots ...*Snapshot) *Snapshot {
	var vehicles []Vehicle
	var stations []Station
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		vehicles = append(vehicles, s.Vehicles...)
		stations = append(stations, s.Stations...)
	}
	return NewSnapshot(vehicles, stations)
}
