package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/modeparams"
	"github.com/antigravity/gangnam-multimodal/internal/network"
	"github.com/antigravity/gangnam-multimodal/internal/zone"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	stops := []network.Stop{
		{ID: 0, ExtID: "A", Name: "Gangnam", Lat: 37.4979, Lon: 127.0276},
		{ID: 1, ExtID: "B", Name: "Yeoksam", Lat: 37.5000, Lon: 127.0364},
	}
	routes := []network.Route{{ID: 0, ShortName: "2", ModeClass: network.ModeMetro, Stops: []network.StopID{0, 1}}}
	store, err := network.New(stops, routes, nil)
	require.NoError(t, err)

	params := modeparams.Default()
	reach := mobility.NewReachabilityIndex(stops, nil, params, 10)
	planner := access.NewPlanner(stops, reach, params)

	return &Server{
		Store:      store,
		Mobility:   mobility.NewLayer(mobility.NewSnapshot(nil, nil)),
		Planner:    planner,
		ModeParams: params,
	}
}

func TestHandleHealthReturnsOK(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	NewRouter(s).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleListStopsReturnsEveryStop(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stops", nil)
	w := httptest.NewRecorder()

	NewRouter(s).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gangnam")
}

func TestHandleLineDetailsUnknownIDReturnsNotFound(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lines/999", nil)
	w := httptest.NewRecorder()

	NewRouter(s).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandleFindRoutesShortCircuitsMobilityOnly pins the single-tile grid
// down to zone distance 0 ("mobility_only"), so the handler must return a
// direct-mobility journey without ever needing a reachable transit stop.
func TestHandleFindRoutesShortCircuitsMobilityOnly(t *testing.T) {
	s := testServer(t)

	bounds := zone.Bounds{North: 38.0, South: 37.0, East: 128.0, West: 127.0}
	grid := zone.NewGrid(bounds, 1, 1)
	s.Grid = grid
	s.Strategy = zone.DefaultStrategySelector
	s.RoadGraph = geo.NewGraph()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journeys?from_lat=37.40&from_lon=127.30&to_lat=37.41&to_lon=127.31&departure=08:00&policy=multimodal", nil)
	w := httptest.NewRecorder()

	NewRouter(s).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kickboard")
}

func TestHandleFindRoutesRejectsUnparseableCoordinates(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/journeys?from_lat=oops", nil)
	w := httptest.NewRecorder()

	NewRouter(s).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reason")
}
