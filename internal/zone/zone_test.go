package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

func testBounds() Bounds {
	return Bounds{North: 37.55, South: 37.46, East: 127.14, West: 127.00}
}

func TestTileForClampsOutOfBoundsPoint(t *testing.T) {
	g := DefaultGrid(testBounds())
	tile := g.TileFor(geo.Point{Lat: 90, Lon: 200})
	assert.Equal(t, 0, tile.Row)
	assert.Equal(t, g.cols-1, tile.Col)
}

func TestZoneDistanceIsChebyshev(t *testing.T) {
	a := Tile{Row: 0, Col: 0}
	b := Tile{Row: 2, Col: 5}
	assert.Equal(t, 5, ZoneDistance(a, b))
}

func TestAssignStopAddsToContainingTile(t *testing.T) {
	g := DefaultGrid(testBounds())
	stop := network.Stop{ID: 7, Lat: 37.50, Lon: 127.03}
	g.AssignStop(stop)

	tile := g.TileFor(geo.Point{Lat: stop.Lat, Lon: stop.Lon})
	assert.Contains(t, tile.TransitStops, network.StopID(7))
}

func TestDefaultStrategySelectorAppliesRushHourPenalty(t *testing.T) {
	rushHour := time.Date(2026, 7, 30, 8, 0, 0, 0, time.UTC)
	offPeak := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	rush := DefaultStrategySelector(1, rushHour)
	normal := DefaultStrategySelector(1, offPeak)

	assert.Less(t, rush.MobilityWeight, normal.MobilityWeight)
}

func TestDefaultStrategySelectorUnknownDistanceFallsBackToTransitOnly(t *testing.T) {
	s := DefaultStrategySelector(99, time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "transit_only", s.Name)
}

func TestDefaultStrategySelectorLowZoneDistanceAllowsDirectMobility(t *testing.T) {
	s := DefaultStrategySelector(0, time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC))
	assert.True(t, s.AllowDirectMobility)
}
