// Package mobility implements the free-floating vehicle inventory, docked
// bike stations, mode-reachability queries, and the OTP-style virtual
// network synthesis that promotes docks and kickboard clusters into
// ordinary network stops/routes.
package mobility

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
)

// Vehicle is a free-floating unit with no dock, per spec.md 3.
type Vehicle struct {
	ID          string
	Lat, Lon    float64
	Mode        modeparams.Mode
	BatteryPct  float64
	Available   bool
	Provider    string
	LastUpdated time.Time
}

// Station is a docked-bike station, per spec.md 3.
type Station struct {
	ID             string
	Name           string
	Lat, Lon       float64
	Capacity       int
	BikesAvailable int
	DocksAvailable int
	Active         bool
	Provider       string
	LastUpdated    time.Time
}

// Snapshot is a point-in-time inventory. It is immutable once constructed;
// Layer swaps snapshots atomically between queries, never mutates one
// mid-query.
type Snapshot struct {
	Vehicles []Vehicle
	Stations []Station

	vehicleIndex *geo.CellIndex
	vehicleByPos map[int64]Vehicle
	stationIndex *geo.CellIndex
	stationByPos map[int64]Station
}

// NewSnapshot builds a cell-indexed snapshot from raw inventories.
func NewSnapshot(vehicles []Vehicle, stations []Station) *Snapshot {
	s := &Snapshot{
		Vehicles:     vehicles,
		Stations:     stations,
		vehicleIndex: geo.NewCellIndex(),
		vehicleByPos: make(map[int64]Vehicle, len(vehicles)),
		stationIndex: geo.NewCellIndex(),
		stationByPos: make(map[int64]Station, len(stations)),
	}
	for i, v := range vehicles {
		s.vehicleIndex.Insert(int64(i), geo.Point{Lat: v.Lat, Lon: v.Lon})
		s.vehicleByPos[int64(i)] = v
	}
	for i, st := range stations {
		s.stationIndex.Insert(int64(i), geo.Point{Lat: st.Lat, Lon: st.Lon})
		s.stationByPos[int64(i)] = st
	}
	return s
}

// Layer holds the swappable current Snapshot behind an atomic pointer so
// concurrent queries never observe a torn update.
type Layer struct {
	current atomic.Pointer[Snapshot]
}

// NewLayer returns a Layer seeded with an initial snapshot.
func NewLayer(initial *Snapshot) *Layer {
	l := &Layer{}
	l.current.Store(initial)
	return l
}

// Swap atomically replaces the current snapshot.
func (l *Layer) Swap(next *Snapshot) {
	l.current.Store(next)
}

// Current returns the snapshot in effect for a new query. A query must
// hold onto the returned pointer for its whole duration rather than
// calling Current again, so a concurrent Swap cannot change the inventory
// mid-query.
func (l *Layer) Current() *Snapshot {
	return l.current.Load()
}

// VehiclesNear returns available free-floating vehicles within radiusM of
// point, optionally filtered by mode, sorted by distance ascending.
func (s *Snapshot) VehiclesNear(point geo.Point, radiusM float64, mode modeparams.Mode) []Vehicle {
	type withDist struct {
		v Vehicle
		d float64
	}
	ringSize := ringSizeForRadius(radiusM)
	candidates := s.vehicleIndex.CandidatesNear(point, ringSize)

	var out []withDist
	for _, idx := range candidates {
		v := s.vehicleByPos[idx]
		if !v.Available {
			continue
		}
		if mode != "" && v.Mode != mode {
			continue
		}
		d := geo.HaversineMeters(point, geo.Point{Lat: v.Lat, Lon: v.Lon})
		if d > radiusM {
			continue
		}
		out = append(out, withDist{v, d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].d < out[j].d })
	result := make([]Vehicle, len(out))
	for i, wd := range out {
		result[i] = wd.v
	}
	return result
}

// StationsNear returns dock stations within radiusM of point, sorted by
// distance. requireBikes filters out stations with no bikes available
// (pickup queries); requireDocks filters out stations with no free docks
// (dropoff queries). Both may be requested; neither is required.
func (s *Snapshot) StationsNear(point geo.Point, radiusM float64, requireBikes, requireDocks bool) []Station {
	type withDist struct {
		st Station
		d  float64
	}
	ringSize := ringSizeForRadius(radiusM)
	candidates := s.stationIndex.CandidatesNear(point, ringSize)

	var out []withDist
	for _, idx := range candidates {
		st := s.stationByPos[idx]
		if !st.Active {
			continue
		}
		if requireBikes && st.BikesAvailable <= 0 {
			continue
		}
		if requireDocks && st.DocksAvailable <= 0 {
			continue
		}
		d := geo.HaversineMeters(point, geo.Point{Lat: st.Lat, Lon: st.Lon})
		if d > radiusM {
			continue
		}
		out = append(out, withDist{st, d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].d < out[j].d })
	result := make([]Station, len(out))
	for i, wd := range out {
		result[i] = wd.st
	}
	return result
}

// ringSizeForRadius picks an H3 grid-disk ring size generous enough to
// cover radiusM at the index's fixed resolution (~170m cells); rounding up
// and adding one ring of slack keeps the candidate prefilter from missing
// entries near a cell boundary.
func ringSizeForRadius(radiusM float64) int {
	const cellEdgeMeters = 170.0
	rings := int(radiusM/cellEdgeMeters) + 2
	if rings < 2 {
		rings = 2
	}
	return rings
}
