// Package zone implements the hybrid variant's zone grid and pre-query
// strategy selector, grounded on the original's Zone/ZoneConfig classes.
package zone

import (
	"math"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Bounds is the served bounding box, e.g. the Gangnam district bounds used
// by the source (north 37.55, south 37.46, west 127.0, east 127.14).
type Bounds struct {
	North, South, East, West float64
}

// Density is a tile's qualitative tag, assigned from transit-stop density
// at load time.
type Density string

const (
	DensityResidential Density = "residential"
	DensityMixed       Density = "mixed"
	DensityCommercial  Density = "commercial"
)

// Tile is one cell of the grid.
type Tile struct {
	Row, Col       int
	TransitStops   []network.StopID
	MobilityDensity float64
	Density        Density
}

// Grid is a fixed R x C tiling of the bounding box, default 30x30 per the
// source's ZoneConfig.grid_size.
type Grid struct {
	bounds     Bounds
	rows, cols int
	tiles      [][]Tile
}

// NewGrid builds an empty grid over bounds with the given row/col count.
func NewGrid(bounds Bounds, rows, cols int) *Grid {
	g := &Grid{bounds: bounds, rows: rows, cols: cols}
	g.tiles = make([][]Tile, rows)
	for r := 0; r < rows; r++ {
		g.tiles[r] = make([]Tile, cols)
		for c := 0; c < cols; c++ {
			g.tiles[r][c] = Tile{Row: r, Col: c}
		}
	}
	return g
}

// DefaultGrid builds a 30x30 grid, the source's default grid_size.
func DefaultGrid(bounds Bounds) *Grid {
	return NewGrid(bounds, 30, 30)
}

// TileFor returns the tile containing point, clamped to the grid edges so
// a point just outside the bounding box still resolves instead of panicking.
func (g *Grid) TileFor(p geo.Point) Tile {
	rowFrac := (g.bounds.North - p.Lat) / (g.bounds.North - g.bounds.South)
	colFrac := (p.Lon - g.bounds.West) / (g.bounds.East - g.bounds.West)
	row := clamp(int(rowFrac*float64(g.rows)), 0, g.rows-1)
	col := clamp(int(colFrac*float64(g.cols)), 0, g.cols-1)
	return g.tiles[row][col]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AssignStop maps a transit stop into its tile's membership set; called
// once at load per stop.
func (g *Grid) AssignStop(stop network.Stop) {
	t := g.TileFor(geo.Point{Lat: stop.Lat, Lon: stop.Lon})
	g.tiles[t.Row][t.Col].TransitStops = append(g.tiles[t.Row][t.Col].TransitStops, stop.ID)
}

// SetDensity tags a tile's mobility density and derived qualitative class,
// mirroring the source's residential/mixed/commercial mapping.
func (g *Grid) SetDensity(row, col int, density float64) {
	tag := DensityResidential
	switch {
	case density >= 0.66:
		tag = DensityCommercial
	case density >= 0.33:
		tag = DensityMixed
	}
	g.tiles[row][col].MobilityDensity = density
	g.tiles[row][col].Density = tag
}

// ZoneDistance is the Chebyshev distance between two tiles, used by the
// strategy selector to choose a first/last-mile strategy.
func ZoneDistance(a, b Tile) int {
	dr := math.Abs(float64(a.Row - b.Row))
	dc := math.Abs(float64(a.Col - b.Col))
	if dr > dc {
		return int(dr)
	}
	return int(dc)
}
