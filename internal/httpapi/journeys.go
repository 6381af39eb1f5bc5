package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/journey"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/solver"
	"github.com/antigravity/gangnam-multimodal/internal/zone"
)

// handleFindRoutes implements the find_routes operation from spec.md 6:
//
//	GET /api/v1/journeys?from_lat=&from_lon=&to_lat=&to_lon=&departure=HH:MM
//	    &policy=transit_only|multimodal&variant=hybrid|otp
//	    &time_weight=&transfer_weight=&walk_weight=&cost_weight=
//	    &bike_pref=&kickboard_pref=&ebike_pref=
//	    &max_walk_m=&max_total_min=&max_transfers=
func (s *Server) handleFindRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	fromLat, errA := parseFloat(q.Get("from_lat"))
	fromLon, errB := parseFloat(q.Get("from_lon"))
	toLat, errC := parseFloat(q.Get("to_lat"))
	toLon, errD := parseFloat(q.Get("to_lon"))
	if errA != nil || errB != nil || errC != nil || errD != nil {
		writeEmptyWithReason(w, "origin or destination coordinates missing or unparseable")
		return
	}

	departureMin, err := parseClockMinutes(q.Get("departure"))
	if err != nil {
		writeEmptyWithReason(w, "departure time unparseable")
		return
	}

	policy := access.TransitOnly
	if q.Get("policy") == "multimodal" {
		policy = access.Multimodal
	}

	pref := journey.Preference{
		WeightTime:      parseFloatDefault(q.Get("time_weight"), 0.4),
		WeightTransfers: parseFloatDefault(q.Get("transfer_weight"), 0.2),
		WeightWalk:      parseFloatDefault(q.Get("walk_weight"), 0.2),
		WeightCost:      parseFloatDefault(q.Get("cost_weight"), 0.2),
		MobilityPreference: map[string]float64{
			string(modeparams.DockBike):  parseFloatDefault(q.Get("bike_pref"), 0),
			string(modeparams.Kickboard): parseFloatDefault(q.Get("kickboard_pref"), 0),
			string(modeparams.Ebike):     parseFloatDefault(q.Get("ebike_pref"), 0),
		},
		MaxWalkDistanceM: parseFloatDefault(q.Get("max_walk_m"), 1200),
		MaxTotalTimeMin:  int(parseFloatDefault(q.Get("max_total_min"), 120)),
		MaxTransfers:     int(parseFloatDefault(q.Get("max_transfers"), 4)),
	}

	origin := geo.Point{Lat: fromLat, Lon: fromLon}
	destination := geo.Point{Lat: toLat, Lon: toLon}
	limits := access.Limits{MaxWalkMeters: pref.MaxWalkDistanceM, PickupRadiusM: 500}

	snapshot := s.Mobility.Current()

	// The zone-gated variant decides, before touching the solver at all,
	// whether this query is close enough to short-circuit with
	// mobility-only routing (PART2_HYBRID.py's _get_routing_strategy +
	// find_routes). Grid/Strategy are optional: a Server built without
	// them (e.g. a lighter-weight deployment or a unit test) just always
	// runs the solver, per the original's "default" bucket.
	strategy := zone.RoutingStrategy{AllowDirectMobility: false}
	if s.Grid != nil && s.Strategy != nil {
		zoneDistance := zone.ZoneDistance(s.Grid.TileFor(origin), s.Grid.TileFor(destination))
		strategy = s.Strategy(zoneDistance, time.Now())
	}

	var candidates []journey.Candidate
	if policy == access.Multimodal && strategy.AllowDirectMobility {
		candidates = append(candidates, s.directMobilityCandidates(origin, destination, snapshot)...)
	}

	if strategy.Name != "mobility_only" {
		accessOptions := s.Planner.Access(origin, policy, limits, snapshot)
		egressOptions := s.Planner.Egress(destination, policy, limits, snapshot)

		if len(accessOptions) == 0 || len(egressOptions) == 0 {
			if len(candidates) == 0 {
				writeEmptyWithReason(w, "no stops within walk radius of origin or destination")
				return
			}
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			in := solver.Input{
				Store:         s.Store,
				Stops:         s.Store.AllStops(),
				AccessOptions: accessOptions,
				DepartureTime: departureMin,
				ServiceID:     serviceIDForDay(time.Now()),
				Policy:        policy,
				Reach:         s.Planner.ReachabilityIndex(),
				Snapshot:      snapshot,
				Params:        s.ModeParams,
			}

			var table *solver.Table
			if q.Get("variant") == "otp" {
				table = solver.RunOTP(ctx, in, pref.MaxTransfers)
			} else {
				table = solver.RunHybrid(ctx, in)
			}

			candidates = append(candidates, journey.EmitCandidates(table, s.Store, egressOptions, departureMin)...)
		}
	}

	if len(candidates) == 0 {
		writeEmptyWithReason(w, "no route found for the requested origin, destination, and policy")
		return
	}

	selected := journey.Select(candidates, pref)

	journeys := make([]journey.Journey, len(selected))
	for i, c := range selected {
		journeys[i] = journey.ToJourney(c)
	}
	writeJSON(w, http.StatusOK, journeys)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseFloatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// parseClockMinutes parses "HH:MM" into minutes from midnight.
func parseClockMinutes(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, strconv.ErrSyntax
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func serviceIDForDay(t time.Time) string {
	switch t.Weekday() {
	case time.Saturday:
		return "saturday"
	case time.Sunday:
		return "sunday"
	default:
		return "weekday"
	}
}
