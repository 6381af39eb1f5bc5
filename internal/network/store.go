package network

import "fmt"

// Store is the read-only, indexed network view consumed by the solver.
// It generalizes the teacher's RaptorData: where the teacher rebuilt its
// stop-to-routes index on every solver round (flagged as a defect), Store
// builds it once here at construction time.
type Store struct {
	stops       []Stop
	extIDToStop map[string]StopID
	routes      []Route

	routesThroughStop map[StopID][]RouteID
	stopPosInRoute    map[RouteID]map[StopID]int
	transfers         map[StopID][]Transfer
}

// New builds a Store from already-loaded stops, routes, and transfers. It
// validates and indexes but never mutates its inputs afterward.
func New(stops []Stop, routes []Route, transfers map[StopID][]Transfer) (*Store, error) {
	s := &Store{
		stops:             stops,
		extIDToStop:       make(map[string]StopID, len(stops)),
		routes:            routes,
		routesThroughStop: make(map[StopID][]RouteID),
		stopPosInRoute:    make(map[RouteID]map[StopID]int),
		transfers:         transfers,
	}
	for _, st := range stops {
		s.extIDToStop[st.ExtID] = st.ID
	}
	for _, r := range routes {
		positions := make(map[StopID]int, len(r.Stops))
		for pos, stopID := range r.Stops {
			if int(stopID) < 0 || int(stopID) >= len(stops) {
				return nil, fmt.Errorf("route %d references unknown stop %d", r.ID, stopID)
			}
			positions[stopID] = pos
			s.routesThroughStop[stopID] = append(s.routesThroughStop[stopID], r.ID)
		}
		s.stopPosInRoute[r.ID] = positions
	}
	return s, nil
}

// NumStops reports the dense stop-index range.
func (s *Store) NumStops() int { return len(s.stops) }

// StopByID returns the stop for a dense index.
func (s *Store) StopByID(id StopID) (Stop, bool) {
	if int(id) < 0 || int(id) >= len(s.stops) {
		return Stop{}, false
	}
	return s.stops[id], true
}

// StopByExtID resolves an opaque external id to a dense index.
func (s *Store) StopByExtID(extID string) (StopID, bool) {
	id, ok := s.extIDToStop[extID]
	return id, ok
}

// AllStops returns the full stop table; callers must not mutate it.
func (s *Store) AllStops() []Stop { return s.stops }

// RoutesThroughStop returns every route serving a stop, the precomputed
// routes_serving_stop index the teacher rebuilt per round.
func (s *Store) RoutesThroughStop(id StopID) []RouteID {
	return s.routesThroughStop[id]
}

// Route returns a route by dense index.
func (s *Store) Route(id RouteID) (Route, bool) {
	if int(id) < 0 || int(id) >= len(s.routes) {
		return Route{}, false
	}
	return s.routes[id], true
}

// StopSequence returns a route's ordered stop list.
func (s *Store) StopSequence(id RouteID) []StopID {
	r, ok := s.Route(id)
	if !ok {
		return nil
	}
	return r.Stops
}

// StopPosition returns the position of a stop within a route's sequence.
func (s *Store) StopPosition(route RouteID, stop StopID) (int, bool) {
	positions, ok := s.stopPosInRoute[route]
	if !ok {
		return -1, false
	}
	pos, ok := positions[stop]
	return pos, ok
}

// Timetable returns a route's dep/arr matrices.
func (s *Store) Timetable(id RouteID) (Timetable, bool) {
	r, ok := s.Route(id)
	if !ok {
		return Timetable{}, false
	}
	return r.Timetable, true
}

// WalkTransfers returns the walk-transfer edges out of a stop.
func (s *Store) WalkTransfers(id StopID) []Transfer {
	return s.transfers[id]
}
