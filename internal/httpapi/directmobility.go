package httpapi

import (
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/journey"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Direct-mobility constants ported from PART2_HYBRID.py's
// _find_direct_mobility_routes: a kickboard ride direct to the
// destination when within range, or a walk to a nearby dock followed by a
// docked-bike ride otherwise.
const (
	directKickboardCutoffMeters   = 3000
	directBikeStationRadiusMeters = 500

	kickboardMetersPerMinute = 333 // 20 km/h
	dockBikeMetersPerMinute  = 250 // 15 km/h

	kickboardBaseFare      = 1000
	kickboardPerHundredM   = 200
	dockBikeFlatFare       = 1000
	roadDistanceMaxExplore = 20000
)

// directMobilityCandidates builds the zone-gated variant's mobility-only
// short-circuit candidates: these never touch the solver at all, so they
// are added for every multimodal query whose strategy allows direct
// mobility, alongside whatever the solver itself returns.
func (s *Server) directMobilityCandidates(origin, destination geo.Point, snapshot *mobility.Snapshot) []journey.Candidate {
	var candidates []journey.Candidate

	if straight := geo.HaversineMeters(origin, destination); straight <= directKickboardCutoffMeters {
		roadMeters := geo.RoadDistance(s.RoadGraph, origin, destination, directKickboardCutoffMeters, false, roadDistanceMaxExplore)
		durationMin := roadMeters / kickboardMetersPerMinute
		cost := kickboardBaseFare + float64(int(roadMeters/100))*kickboardPerHundredM

		leg := journey.Leg{
			Type:     journey.LegMobility,
			FromStop: pointStop(origin),
			ToStop:   pointStop(destination),
			StartMin: 0,
			EndMin:   int(durationMin),
			Mode:     string(modeparams.Kickboard),
			Cost:     cost,
		}
		candidates = append(candidates, journey.CandidateFromLegs([]journey.Leg{leg}))
	}

	if snapshot == nil {
		return candidates
	}
	stations := snapshot.StationsNear(origin, directBikeStationRadiusMeters, true, false)
	if len(stations) == 0 {
		return candidates
	}
	station := stations[0]
	stationPoint := geo.Point{Lat: station.Lat, Lon: station.Lon}

	walkMeters := geo.HaversineMeters(origin, stationPoint)
	walkMin := walkMeters / modeparams.WalkMetersPerMinute
	bikeMeters := geo.RoadDistance(s.RoadGraph, stationPoint, destination, directKickboardCutoffMeters, false, roadDistanceMaxExplore)
	bikeMin := bikeMeters / dockBikeMetersPerMinute

	walkLeg := journey.Leg{
		Type:       journey.LegAccess,
		ToStop:     pointStop(stationPoint),
		StartMin:   0,
		EndMin:     int(walkMin),
		Mode:       string(modeparams.Walk),
		WalkMeters: walkMeters,
	}
	bikeLeg := journey.Leg{
		Type:      journey.LegMobility,
		FromStop:  pointStop(stationPoint),
		ToStop:    pointStop(destination),
		StartMin:  walkLeg.EndMin,
		EndMin:    walkLeg.EndMin + int(bikeMin),
		Mode:      string(modeparams.DockBike),
		Cost:      dockBikeFlatFare,
		VehicleID: station.ID,
	}
	candidates = append(candidates, journey.CandidateFromLegs([]journey.Leg{walkLeg, bikeLeg}))

	return candidates
}

// pointStop wraps a bare coordinate as a network.Stop so it can populate a
// Leg's FromStop/ToStop; direct-mobility legs never board at a real
// network stop, only at the caller's raw origin/destination.
func pointStop(p geo.Point) network.Stop {
	return network.Stop{Lat: p.Lat, Lon: p.Lon}
}
