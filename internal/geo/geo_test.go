package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineMetersKnownDistance(t *testing.T) {
	gangnamStation := Point{Lat: 37.4979, Lon: 127.0276}
	yeoksamStation := Point{Lat: 37.5000, Lon: 127.0364}
	d := HaversineMeters(gangnamStation, yeoksamStation)
	assert.InDelta(t, 850, d, 200)
}

func TestHaversineMetersZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 37.5, Lon: 127.0}
	assert.Equal(t, 0.0, HaversineMeters(p, p))
}

func TestShortestPathFindsDirectEdge(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: 1, Lat: 37.50, Lon: 127.00})
	g.AddNode(Node{ID: 2, Lat: 37.51, Lon: 127.01})
	g.AddNode(Node{ID: 3, Lat: 37.52, Lon: 127.02})
	g.AddEdge(1, 2, 100)
	g.AddEdge(2, 3, 150)

	dist, ok := g.ShortestPath(1, 3, 1000)
	require.True(t, ok)
	assert.Equal(t, 250.0, dist)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := NewGraph()
	g.AddNode(Node{ID: 1})
	g.AddNode(Node{ID: 2})
	_, ok := g.ShortestPath(1, 2, 1000)
	assert.False(t, ok)
}

func TestNodeCountNilSafe(t *testing.T) {
	var g *Graph
	assert.Equal(t, 0, g.NodeCount())
}

func TestRoadDistanceFallsBackWithoutGraph(t *testing.T) {
	a := Point{Lat: 37.50, Lon: 127.00}
	b := Point{Lat: 37.51, Lon: 127.01}
	d := RoadDistance(nil, a, b, 5000, false, 1000)
	assert.Greater(t, d, 0.0)
}

func TestCellIndexCandidatesNearIncludesInsertedPoint(t *testing.T) {
	idx := NewCellIndex()
	p := Point{Lat: 37.5, Lon: 127.03}
	idx.Insert(42, p)

	candidates := idx.CandidatesNear(p, 2)
	assert.Contains(t, candidates, int64(42))
}
