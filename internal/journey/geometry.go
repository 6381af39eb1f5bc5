package journey

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// LegGeometry builds a GeoJSON LineString for a leg's endpoints, used by
// the HTTP API response to give callers a map-renderable geometry per leg
// without the journey builder owning any rendering logic itself.
func LegGeometry(l Leg) *geojson.Geometry {
	return geojson.NewLineStringGeometry([][]float64{
		{l.FromStop.Lon, l.FromStop.Lat},
		{l.ToStop.Lon, l.ToStop.Lat},
	})
}

// ToJourney converts an internal Candidate into the external Journey shape
// from spec.md 6, formatting times as HH:MM.
func ToJourney(c Candidate) Journey {
	legs := make([]Leg, len(c.Legs))
	for i, l := range c.Legs {
		l.Geometry = LegGeometry(l)
		legs[i] = l
	}
	return Journey{
		DepartureTime:     formatMinutes(c.DepartureMin),
		ArrivalTime:       formatMinutes(c.ArrivalMin),
		TotalTime:         c.TotalTimeMin,
		TotalCost:         c.TotalCost,
		Transfers:         c.Transfers,
		TotalWalkDistance: c.WalkMeters,
		UsedMobilityModes: c.UsedMobilityModes,
		Legs:              legs,
	}
}

func formatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	h := (total / 60) % 24
	m := total % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
