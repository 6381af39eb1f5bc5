// Package modeparams is the mode-parameters table: speed, fare, range, and
// battery-consumption rate per mode, collapsing per-mode branching into
// table lookups instead of polymorphic dispatch, per the design notes.
package modeparams

// Mode is the closed sum of every mode the planner reasons about.
type Mode string

const (
	Walk      Mode = "walk"
	Bus       Mode = "bus"
	Metro     Mode = "metro"
	DockBike  Mode = "dock_bike"
	Kickboard Mode = "kickboard"
	Ebike     Mode = "ebike"
)

// Params holds one mode's constants, loaded from configuration.
type Params struct {
	SpeedKmh       float64 // 0 for scheduled modes (bus/metro use the timetable, not a speed)
	BaseFare       float64
	PerMinuteFare  float64
	RangeKm        float64 // 0 for modes without a vehicle range (walk, bus, metro)
	BatteryPctPerKm float64
}

// Table is the full mode-parameters table, keyed by Mode.
type Table map[Mode]Params

// Default returns the constants from spec.md section 6.
func Default() Table {
	return Table{
		Walk:      {SpeedKmh: 4.8},
		Bus:       {BaseFare: 1370},
		Metro:     {BaseFare: 1370},
		DockBike:  {SpeedKmh: 15.0, BaseFare: 1000, RangeKm: 10},
		Kickboard: {SpeedKmh: 20.0, BaseFare: 1000, PerMinuteFare: 150, RangeKm: 15, BatteryPctPerKm: 8},
		Ebike:     {SpeedKmh: 25.0, BaseFare: 490, RangeKm: 20, BatteryPctPerKm: 5},
	}
}

// WalkMetersPerMinute is the fixed walking speed used for time estimates
// (80 m/min, independent of the 4.8 km/h "Speed" column used for cost
// comparisons — the source keeps both, so this does too).
const WalkMetersPerMinute = 80.0

// RangeMeters returns a mode's maximum range in meters, 0 for modes with
// no vehicle range; ReachableRangeMeters then also returns 0, so no stop
// counts as reachable by that mode.
func (t Table) RangeMeters(m Mode) float64 {
	return t[m].RangeKm * 1000
}

// ReachableRangeMeters applies spec.md 4.3's battery-scaled range formula:
// min(MAX_RANGE[mode], battery_pct/100 * MAX_RANGE[mode]).
func (t Table) ReachableRangeMeters(m Mode, batteryPct float64) float64 {
	maxRange := t.RangeMeters(m)
	if maxRange == 0 {
		return 0
	}
	scaled := (batteryPct / 100.0) * maxRange
	if scaled < maxRange {
		return scaled
	}
	return maxRange
}
