package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
)

func TestDirectMobilityCandidatesKickboardWithinCutoff(t *testing.T) {
	s := &Server{RoadGraph: geo.NewGraph()}
	origin := geo.Point{Lat: 37.500, Lon: 127.000}
	destination := geo.Point{Lat: 37.505, Lon: 127.005} // roughly 710m away

	candidates := s.directMobilityCandidates(origin, destination, nil)
	require.Len(t, candidates, 1)
	require.Len(t, candidates[0].Legs, 1)
	assert.Equal(t, "kickboard", candidates[0].Legs[0].Mode)
}

func TestDirectMobilityCandidatesSkipsKickboardBeyondCutoff(t *testing.T) {
	s := &Server{RoadGraph: geo.NewGraph()}
	origin := geo.Point{Lat: 37.400, Lon: 127.000}
	destination := geo.Point{Lat: 37.500, Lon: 127.100} // well beyond 3km

	candidates := s.directMobilityCandidates(origin, destination, nil)
	assert.Empty(t, candidates)
}

func TestDirectMobilityCandidatesAddsNearbyDockBikeRoute(t *testing.T) {
	s := &Server{RoadGraph: geo.NewGraph()}
	origin := geo.Point{Lat: 37.400, Lon: 127.000}
	destination := geo.Point{Lat: 37.500, Lon: 127.100}

	snapshot := mobility.NewSnapshot(nil, []mobility.Station{
		{ID: "st-1", Lat: 37.4001, Lon: 127.0001, Active: true, BikesAvailable: 3, DocksAvailable: 3},
	})

	candidates := s.directMobilityCandidates(origin, destination, snapshot)
	require.Len(t, candidates, 1)
	require.Len(t, candidates[0].Legs, 2)
	assert.Equal(t, "dock_bike", candidates[0].Legs[1].Mode)
}
