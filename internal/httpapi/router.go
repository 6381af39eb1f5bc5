// Package httpapi exposes the planner over HTTP via chi, generalizing the
// teacher's internal/handler/transport_handler.go wiring (chi middleware,
// rs/cors) to the find_routes operation plus the teacher's existing
// lines/stops listing endpoints.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
	"github.com/antigravity/gangnam-multimodal/internal/zone"
)

// Server bundles the read-only dependencies every handler needs.
type Server struct {
	Store      *network.Store
	Mobility   *mobility.Layer
	Planner    *access.Planner
	Grid       *zone.Grid
	Strategy   zone.StrategySelector
	RoadGraph  *geo.Graph
	ModeParams modeparams.Table
}

// NewRouter builds the chi router, mirroring the teacher's
// middleware.Logger/Recoverer/Timeout(60s) + rs/cors wiring.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})
	r.Use(corsHandler.Handler)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/journeys", s.handleFindRoutes)
		api.Get("/lines", s.handleListLines)
		api.Get("/lines/{id}", s.handleLineDetails)
		api.Get("/stops", s.handleListStops)
		api.Get("/stops/{id}", s.handleStopDetails)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
