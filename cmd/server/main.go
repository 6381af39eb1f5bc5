// Command server runs the multimodal journey-planning API, generalizing
// the teacher's flat main.go wiring (pgxpool + chi + cors) to the layered
// store/mobility/zone/access/solver stack.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/gangnam-multimodal/internal/access"
	"github.com/antigravity/gangnam-multimodal/internal/cachestore"
	"github.com/antigravity/gangnam-multimodal/internal/config"
	"github.com/antigravity/gangnam-multimodal/internal/geo"
	"github.com/antigravity/gangnam-multimodal/internal/httpapi"
	"github.com/antigravity/gangnam-multimodal/internal/mobility"
	"github.com/antigravity/gangnam-multimodal/internal/store"
	"github.com/antigravity/gangnam-multimodal/internal/zone"
)

// gangnamBounds is the served bounding box, ported from the source's
// Gangnam-district ZoneConfig default.
var gangnamBounds = zone.Bounds{North: 37.55, South: 37.46, East: 127.14, West: 127.00}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("unable to parse postgres dsn: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("unable to create connection pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}
	log.Println("connected to PostGIS database")

	loader := store.NewLoader(pool)
	netStore, initialSnapshot, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load network: %v", err)
	}
	log.Printf("loaded network: %d stops", netStore.NumStops())

	mobilityLayer := mobility.NewLayer(initialSnapshot)

	redisClient := cachestore.GetSnapshotClient()
	snapshotStore := cachestore.NewSnapshotStore(redisClient, cachestore.LoadRedisConfigFromEnv())
	if err := snapshotStore.HealthCheck(ctx); err != nil {
		log.Printf("redis unavailable, continuing with in-process snapshot only: %v", err)
	} else if err := mobilityLayer.RefreshFromShared(ctx, snapshotStore, cfg.MobilityRegion); err != nil {
		log.Printf("mobility snapshot shared-cache refresh failed, continuing with database-loaded snapshot: %v", err)
	}

	// The road graph is an optional refinement input (spec.md 4.3's inner
	// 70% road-distance pass); until OSM road-network ingestion lands it
	// stays empty and RoadDistance falls back to haversine*detour, which
	// geo.RoadDistance already treats as a graceful degraded path.
	roadGraph := geo.NewGraph()

	reach := mobility.NewReachabilityIndex(netStore.AllStops(), roadGraph, cfg.ModeParams, cfg.MobilityReachableCacheCapacity)
	planner := access.NewPlanner(netStore.AllStops(), reach, cfg.ModeParams)

	grid := zone.NewGrid(gangnamBounds, cfg.ZoneGridRows, cfg.ZoneGridCols)
	for _, s := range netStore.AllStops() {
		grid.AssignStop(s)
	}

	server := &httpapi.Server{
		Store:      netStore,
		Mobility:   mobilityLayer,
		Planner:    planner,
		Grid:       grid,
		Strategy:   zone.DefaultStrategySelector,
		RoadGraph:  roadGraph,
		ModeParams: cfg.ModeParams,
	}

	router := httpapi.NewRouter(server)

	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.ServerAddr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
