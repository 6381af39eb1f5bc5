package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// stopSummary is the wire shape for a stop, transit or mobility-virtual.
type stopSummary struct {
	ID      int32   `json:"id"`
	ExtID   string  `json:"ext_id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Kind    string  `json:"kind"`
	ZoneTag string  `json:"zone_tag,omitempty"`
}

// handleListStops returns every stop, optionally filtered to a bounding
// viewport via min_lat/max_lat/min_lon/max_lon, generalizing the teacher's
// unfiltered stop listing to support map-viewport queries.
func (s *Server) handleListStops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hasViewport := q.Get("min_lat") != "" && q.Get("max_lat") != "" && q.Get("min_lon") != "" && q.Get("max_lon") != ""

	var minLat, maxLat, minLon, maxLon float64
	if hasViewport {
		minLat = parseFloatDefault(q.Get("min_lat"), -90)
		maxLat = parseFloatDefault(q.Get("max_lat"), 90)
		minLon = parseFloatDefault(q.Get("min_lon"), -180)
		maxLon = parseFloatDefault(q.Get("max_lon"), 180)
	}

	var out []stopSummary
	for _, stop := range s.Store.AllStops() {
		if hasViewport {
			if stop.Lat < minLat || stop.Lat > maxLat || stop.Lon < minLon || stop.Lon > maxLon {
				continue
			}
		}
		out = append(out, summarizeStop(stop))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleStopDetails returns one stop plus the routes that serve it.
func (s *Server) handleStopDetails(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	idNum, err := strconv.Atoi(idParam)
	if err != nil {
		writeEmptyWithReason(w, "stop id must be numeric")
		return
	}

	stop, ok := s.Store.StopByID(network.StopID(idNum))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Journeys: []any{}, Reason: "stop not found"})
		return
	}

	type stopDetail struct {
		stopSummary
		Lines []lineSummary `json:"lines"`
	}
	detail := stopDetail{stopSummary: summarizeStop(stop)}
	for _, routeID := range s.Store.RoutesThroughStop(stop.ID) {
		if route, ok := s.Store.Route(routeID); ok {
			detail.Lines = append(detail.Lines, summarizeLine(route))
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func summarizeStop(stop network.Stop) stopSummary {
	return stopSummary{
		ID:      int32(stop.ID),
		ExtID:   stop.ExtID,
		Name:    stop.Name,
		Lat:     stop.Lat,
		Lon:     stop.Lon,
		Kind:    string(stop.Kind),
		ZoneTag: stop.ZoneTag,
	}
}
