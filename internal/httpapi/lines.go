package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/antigravity/gangnam-multimodal/internal/network"
)

// lineSummary is the wire shape for a route listing entry, generalizing the
// teacher's line-listing response to the dep/arr-matrix Route model.
type lineSummary struct {
	ID        int32  `json:"id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	ModeClass string `json:"mode_class"`
	StopCount int    `json:"stop_count"`
	TripCount int    `json:"trip_count"`
}

type lineDetail struct {
	lineSummary
	Stops []stopSummary `json:"stops"`
}

// handleListLines returns every route known to the network store.
func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	var out []lineSummary
	for id := network.RouteID(0); ; id++ {
		route, ok := s.Store.Route(id)
		if !ok {
			break
		}
		out = append(out, summarizeLine(route))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLineDetails returns one route's stop sequence in order.
func (s *Server) handleLineDetails(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	idNum, err := strconv.Atoi(idParam)
	if err != nil {
		writeEmptyWithReason(w, "line id must be numeric")
		return
	}

	route, ok := s.Store.Route(network.RouteID(idNum))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Journeys: []any{}, Reason: "line not found"})
		return
	}

	detail := lineDetail{lineSummary: summarizeLine(route)}
	for _, stopID := range route.Stops {
		if stop, ok := s.Store.StopByID(stopID); ok {
			detail.Stops = append(detail.Stops, summarizeStop(stop))
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

func summarizeLine(route network.Route) lineSummary {
	return lineSummary{
		ID:        int32(route.ID),
		ShortName: route.ShortName,
		LongName:  route.LongName,
		ModeClass: string(route.ModeClass),
		StopCount: len(route.Stops),
		TripCount: route.Timetable.NumTrips(),
	}
}
