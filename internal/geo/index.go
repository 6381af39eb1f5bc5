package geo

import h3 "github.com/uber/h3-go/v4"

// indexResolution is the H3 cell resolution used to bucket stops, docks,
// and free-floating vehicles before falling back to haversine/road-graph
// refinement; resolution 9 cells have an edge length of roughly 170m,
// tight enough to bound candidate sets for a 300m-2km search radius.
const indexResolution = 9

// CellIndex buckets points into H3 cells so nearby-point queries can scan
// a handful of ring cells instead of every entry in an inventory.
type CellIndex struct {
	buckets map[h3.Cell][]int64
}

// NewCellIndex returns an empty index.
func NewCellIndex() *CellIndex {
	return &CellIndex{buckets: make(map[h3.Cell][]int64)}
}

// Insert adds id at the given point's H3 cell.
func (c *CellIndex) Insert(id int64, p Point) {
	cell := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lon), indexResolution)
	c.buckets[cell] = append(c.buckets[cell], id)
}

// CandidatesNear returns ids whose H3 cell lies within ringSize rings of
// point's cell. Callers still must refine with haversine/road distance;
// this only bounds the candidate set.
func (c *CellIndex) CandidatesNear(p Point, ringSize int) []int64 {
	origin := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lon), indexResolution)
	cells, err := h3.GridDisk(origin, ringSize)
	if err != nil {
		// Degrade to the origin cell only; callers already treat the
		// candidate set as a prefilter, not a correctness guarantee.
		cells = []h3.Cell{origin}
	}
	var out []int64
	for _, cell := range cells {
		out = append(out, c.buckets[cell]...)
	}
	return out
}
