// Package store loads the static network (stops, routes, timetables,
// walk transfers) and the initial mobility inventory from Postgres/PostGIS,
// generalizing the teacher's routing/loader.go from a single-city bus/metro
// schema to the dep/arr-matrix network.Store model plus dock stations.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// Loader wraps a pgx pool for preprocessed-network construction.
type Loader struct {
	db *pgxpool.Pool
}

// NewLoader wraps an existing pool; the loader never owns pool lifecycle.
func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

// defaultStopTimeOffsetMinutes is the teacher's simplification: a fixed
// per-stop travel-time offset applied to a trip's line-level departure.
// Every trip's downstream stop times are synthesized this way; per-stop
// times from a stop_times table are not read.
const defaultStopTimeOffsetMinutes = 3

// walkTransferRadiusMeters and walkSpeedMetersPerSecond mirror the teacher's
// ST_DWithin(..., 300) transfer generation at an assumed 1 m/s walk speed.
const (
	walkTransferRadiusMeters = 300.0
	walkSpeedMetersPerSecond = 1.0
)

// Load builds a network.Store and the initial mobility.Snapshot from the
// database. Rows with data-inconsistencies are skipped rather than failing
// the whole load, per spec.md 7: trips with arr < dep rows and line stops
// with unknown stop codes are skipped with a counted warning; walk-transfer
// rows with unknown stop codes are skipped without a warning.
func (l *Loader) Load(ctx context.Context) (*network.Store, *mobility.Snapshot, error) {
	stops, err := l.loadStops(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load stops: %w", err)
	}

	routes, droppedTrips, err := l.loadRoutes(ctx, stops)
	if err != nil {
		return nil, nil, fmt.Errorf("load routes: %w", err)
	}
	if droppedTrips > 0 {
		log.Printf("store: dropped %d trips with inconsistent timetable rows", droppedTrips)
	}

	transfers, err := l.loadWalkTransfers(ctx, stops)
	if err != nil {
		return nil, nil, fmt.Errorf("load walk transfers: %w", err)
	}

	netStore, err := network.New(stops, routes, transfers)
	if err != nil {
		return nil, nil, fmt.Errorf("build network store: %w", err)
	}

	stations, err := l.loadDockStations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load dock stations: %w", err)
	}
	snapshot := mobility.NewSnapshot(nil, stations)

	return netStore, snapshot, nil
}

func (l *Loader) loadStops(ctx context.Context) ([]network.Stop, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, code, name, ST_Y(geom) as lat, ST_X(geom) as lon, kind
		FROM stops
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []network.Stop
	idx := network.StopID(0)
	for rows.Next() {
		var dbID int
		var code, name, kind string
		var lat, lon float64
		if err := rows.Scan(&dbID, &code, &name, &lat, &lon, &kind); err != nil {
			return nil, err
		}
		stops = append(stops, network.Stop{
			ID: idx, ExtID: code, Name: name, Lat: lat, Lon: lon, Kind: network.Kind(kind),
		})
		idx++
	}
	return stops, rows.Err()
}

// loadRoutes builds routes by distinct (line_id, direction) pattern, the
// teacher's approach, then loads per-day-type schedule rows. Each
// downstream stop gets the teacher's fixed 3-minute offset from the trip's
// first-stop departure.
func (l *Loader) loadRoutes(ctx context.Context, stops []network.Stop) ([]network.Route, int, error) {
	extIDToIdx := make(map[string]network.StopID, len(stops))
	for _, s := range stops {
		extIDToIdx[s.ExtID] = s.ID
	}

	lineRows, err := l.db.Query(ctx, `
		SELECT l.id, l.code, l.name, l.mode_class
		FROM lines l
		ORDER BY l.id
	`)
	if err != nil {
		return nil, 0, err
	}
	defer lineRows.Close()

	var routes []network.Route
	totalDropped := 0
	routeIdx := network.RouteID(0)

	for lineRows.Next() {
		var lineID int
		var code, name, modeClass string
		if err := lineRows.Scan(&lineID, &code, &name, &modeClass); err != nil {
			return nil, 0, err
		}

		stopSeq, err := l.loadLineStopSequence(ctx, lineID, extIDToIdx)
		if err != nil {
			return nil, 0, err
		}
		if len(stopSeq) < 2 {
			continue
		}

		trips, err := l.loadLineTrips(ctx, lineID, len(stopSeq))
		if err != nil {
			return nil, 0, err
		}

		tt, dropped := network.BuildTimetable(len(stopSeq), trips)
		totalDropped += dropped

		routes = append(routes, network.Route{
			ID: routeIdx, ShortName: code, LongName: name,
			ModeClass: network.ModeClass(modeClass), Stops: stopSeq,
			Trips: trips, Timetable: tt,
		})
		routeIdx++
	}
	return routes, totalDropped, lineRows.Err()
}

func (l *Loader) loadLineStopSequence(ctx context.Context, lineID int, extIDToIdx map[string]network.StopID) ([]network.StopID, error) {
	rows, err := l.db.Query(ctx, `
		SELECT s.code
		FROM line_stops ls
		JOIN stops s ON s.id = ls.stop_id
		WHERE ls.line_id = $1
		ORDER BY ls.sequence
	`, lineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seq []network.StopID
	unknown := 0
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		if id, ok := extIDToIdx[code]; ok {
			seq = append(seq, id)
		} else {
			unknown++
		}
	}
	if unknown > 0 {
		log.Printf("store: line %d: skipped %d unknown stop references", lineID, unknown)
	}
	return seq, rows.Err()
}

// loadLineTrips loads per-day-type first-stop departure times from the
// trips table and synthesizes every downstream stop time with the
// teacher's fixed per-stop offset.
func (l *Loader) loadLineTrips(ctx context.Context, lineID, stopCount int) ([]network.Trip, error) {
	rows, err := l.db.Query(ctx, `
		SELECT t.id, t.service_id, t.departure_seconds
		FROM trips t
		WHERE t.line_id = $1
		ORDER BY t.departure_seconds
	`, lineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []network.Trip
	for rows.Next() {
		var tripID int
		var serviceID string
		var departureSeconds int
		if err := rows.Scan(&tripID, &serviceID, &departureSeconds); err != nil {
			return nil, err
		}
		stopTimes := make([]network.StopTime, stopCount)
		startMinute := departureSeconds / 60
		for i := 0; i < stopCount; i++ {
			minute := startMinute + i*defaultStopTimeOffsetMinutes
			stopTimes[i] = network.StopTime{Departure: minute, Arrival: minute}
		}
		trips = append(trips, network.Trip{ID: network.TripID(tripID), ServiceID: serviceID, StopTimes: stopTimes})
	}
	return trips, rows.Err()
}

// loadWalkTransfers generates symmetric walk transfers via ST_DWithin,
// matching the teacher's radius search and 1 m/s assumed walking speed.
func (l *Loader) loadWalkTransfers(ctx context.Context, stops []network.Stop) (map[network.StopID][]network.Transfer, error) {
	extIDToIdx := make(map[string]network.StopID, len(stops))
	for _, s := range stops {
		extIDToIdx[s.ExtID] = s.ID
	}

	rows, err := l.db.Query(ctx, `
		SELECT a.code, b.code, ST_Distance(a.geom::geography, b.geom::geography) as meters
		FROM stops a
		JOIN stops b ON a.id <> b.id AND ST_DWithin(a.geom::geography, b.geom::geography, $1)
	`, walkTransferRadiusMeters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := make(map[network.StopID][]network.Transfer)
	for rows.Next() {
		var aCode, bCode string
		var meters float64
		if err := rows.Scan(&aCode, &bCode, &meters); err != nil {
			return nil, err
		}
		aID, aOK := extIDToIdx[aCode]
		bID, bOK := extIDToIdx[bCode]
		if !aOK || !bOK {
			continue
		}
		minutes := meters / walkSpeedMetersPerSecond / 60
		transfers[aID] = append(transfers[aID], network.Transfer{ToStop: bID, WalkMinutes: minutes})
	}
	return transfers, rows.Err()
}

func (l *Loader) loadDockStations(ctx context.Context) ([]mobility.Station, error) {
	rows, err := l.db.Query(ctx, `
		SELECT id, name, ST_Y(geom), ST_X(geom), capacity, bikes_available, docks_available, active
		FROM dock_stations
	`)
	if err != nil {
		// dock_stations is an optional addition over the teacher's schema;
		// its absence is a data-inconsistency, not fatal (spec.md 7).
		log.Printf("store: dock_stations unavailable, continuing without docked bikes: %v", err)
		return nil, nil
	}
	defer rows.Close()

	var stations []mobility.Station
	for rows.Next() {
		var st mobility.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Lat, &st.Lon, &st.Capacity, &st.BikesAvailable, &st.DocksAvailable, &st.Active); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}
