package mobility

import (
	"fmt"
	"sort"

	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Virtual-network synthesis constants, ported verbatim from
// PART2_OTP.py's _create_bike_routes / _create_virtual_routes /
// _create_intermodal_transfers.
const (
	bikeCutoffMeters      = 3000
	kickboardCutoffMeters = 2000
	topKNeighbors         = 5
	headwayMinutes        = 5
	serviceStartMinute    = 6 * 60
	serviceEndMinute      = 23 * 60
	intermodalTransferMeters = 300
)

// VirtualNetwork is the synthesized stop/route/transfer set produced by
// promoting docks and free-floating clusters to ordinary network entities,
// so the OTP-style solver variant can run a single uniform RAPTOR loop
// over transit and mobility alike.
type VirtualNetwork struct {
	Stops     []network.Stop
	Routes    []network.Route
	Transfers map[network.StopID][]network.Transfer
}

// nearestNeighbors returns up to topK indices into points (excluding self)
// within cutoffMeters, closest-first.
func nearestNeighbors(self geo.Point, points []geo.Point, selfIdx int, cutoffMeters float64, topK int) []int {
	type cand struct {
		idx int
		d   float64
	}
	var cands []cand
	for i, p := range points {
		if i == selfIdx {
			continue
		}
		d := geo.HaversineMeters(self, p)
		if d <= cutoffMeters {
			cands = append(cands, cand{i, d})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })
	if len(cands) > topK {
		cands = cands[:topK]
	}
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.idx
	}
	return out
}

// BuildVirtualNetwork promotes dock stations and kickboard vehicle
// clusters into Stop/Route entities and wires intermodal transfers to the
// existing transit stop table, starting stop/route ids at the given
// offsets so they don't collide with the transit network's dense indices.
func BuildVirtualNetwork(snapshot *Snapshot, transitStops []network.Stop, params modeparams.Table, stopIDOffset network.StopID, routeIDOffset network.RouteID) VirtualNetwork {
	vn := VirtualNetwork{Transfers: make(map[network.StopID][]network.Transfer)}

	nextStopID := stopIDOffset
	nextRouteID := routeIDOffset

	// Dock stations -> bike stops + routes.
	stationPoints := make([]geo.Point, len(snapshot.Stations))
	stationStopIDs := make([]network.StopID, len(snapshot.Stations))
	for i, st := range snapshot.Stations {
		stationPoints[i] = geo.Point{Lat: st.Lat, Lon: st.Lon}
		stopID := nextStopID
		nextStopID++
		stationStopIDs[i] = stopID
		vn.Stops = append(vn.Stops, network.Stop{
			ID: stopID, ExtID: "BIKE_" + st.ID, Name: st.Name,
			Lat: st.Lat, Lon: st.Lon, Kind: network.KindBikeDock,
		})
	}
	bikeSpeedMPerMin := params[modeparams.DockBike].SpeedKmh * 1000 / 60
	for i := range snapshot.Stations {
		neighbors := nearestNeighbors(stationPoints[i], stationPoints, i, bikeCutoffMeters, topKNeighbors)
		for _, j := range neighbors {
			dist := geo.HaversineMeters(stationPoints[i], stationPoints[j])
			travelMin := 0.0
			if bikeSpeedMPerMin > 0 {
				travelMin = dist / bikeSpeedMPerMin
			}
			route := synthesizeRoute(nextRouteID, network.ModeBike, stationStopIDs[i], stationStopIDs[j], travelMin)
			vn.Routes = append(vn.Routes, route)
			nextRouteID++
		}
	}

	// Kickboard vehicles -> virtual stops + routes (clustered 1:1 per
	// vehicle position, matching the OTP variant's per-vehicle virtual
	// station treatment).
	kickPoints := make([]geo.Point, 0, len(snapshot.Vehicles))
	kickStopIDs := make([]network.StopID, 0, len(snapshot.Vehicles))
	for _, v := range snapshot.Vehicles {
		if v.Mode != modeparams.Kickboard || !v.Available {
			continue
		}
		stopID := nextStopID
		nextStopID++
		kickPoints = append(kickPoints, geo.Point{Lat: v.Lat, Lon: v.Lon})
		kickStopIDs = append(kickStopIDs, stopID)
		vn.Stops = append(vn.Stops, network.Stop{
			ID: stopID, ExtID: "KICK_" + v.ID, Name: fmt.Sprintf("kickboard %s", v.ID),
			Lat: v.Lat, Lon: v.Lon, Kind: network.KindKickboardVirtual,
		})
	}
	kickSpeedMPerMin := params[modeparams.Kickboard].SpeedKmh * 1000 / 60
	for i := range kickPoints {
		neighbors := nearestNeighbors(kickPoints[i], kickPoints, i, kickboardCutoffMeters, topKNeighbors)
		for _, j := range neighbors {
			dist := geo.HaversineMeters(kickPoints[i], kickPoints[j])
			travelMin := 0.0
			if kickSpeedMPerMin > 0 {
				travelMin = dist / kickSpeedMPerMin
			}
			route := synthesizeRoute(nextRouteID, network.ModeKickboard, kickStopIDs[i], kickStopIDs[j], travelMin)
			vn.Routes = append(vn.Routes, route)
			nextRouteID++
		}
	}

	// Intermodal transfers within 300m, both directions, between every
	// virtual mobility stop and every nearby transit stop.
	allVirtual := append(append([]geo.Point{}, stationPoints...), kickPoints...)
	allVirtualIDs := append(append([]network.StopID{}, stationStopIDs...), kickStopIDs...)
	for i, vp := range allVirtual {
		for _, ts := range transitStops {
			d := geo.HaversineMeters(vp, geo.Point{Lat: ts.Lat, Lon: ts.Lon})
			if d > intermodalTransferMeters {
				continue
			}
			walkMin := d / modeparams.WalkMetersPerMinute
			vn.Transfers[allVirtualIDs[i]] = append(vn.Transfers[allVirtualIDs[i]], network.Transfer{ToStop: ts.ID, WalkMinutes: walkMin})
			vn.Transfers[ts.ID] = append(vn.Transfers[ts.ID], network.Transfer{ToStop: allVirtualIDs[i], WalkMinutes: walkMin})
		}
	}

	return vn
}

// synthesizeRoute builds a two-stop route with a regular headway service
// window, matching the source's 5-minute headway / 06:00-23:00 window.
func synthesizeRoute(id network.RouteID, mode network.ModeClass, from, to network.StopID, travelMinutes float64) network.Route {
	var trips []network.Trip
	tripID := network.TripID(0)
	for start := serviceStartMinute; start <= serviceEndMinute; start += headwayMinutes {
		arr := int(float64(start) + travelMinutes)
		trips = append(trips, network.Trip{
			ID:        tripID,
			ServiceID: "daily",
			StopTimes: []network.StopTime{
				{Departure: start, Arrival: start},
				{Departure: arr, Arrival: arr},
			},
		})
		tripID++
	}
	timetable, _ := network.BuildTimetable(2, trips)
	return network.Route{
		ID:        id,
		ModeClass: mode,
		Stops:     []network.StopID{from, to},
		Trips:     trips,
		Timetable: timetable,
	}
}
