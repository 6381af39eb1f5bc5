package modeparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachableRangeMetersScalesWithBattery(t *testing.T) {
	table := Default()
	full := table.ReachableRangeMeters(Kickboard, 100)
	half := table.ReachableRangeMeters(Kickboard, 50)
	assert.InDelta(t, full/2, half, 1)
}

func TestReachableRangeMetersCapsAtMaxRange(t *testing.T) {
	table := Default()
	over := table.ReachableRangeMeters(Kickboard, 150)
	full := table.ReachableRangeMeters(Kickboard, 100)
	assert.Equal(t, full, over)
}

func TestDefaultTableHasEveryMode(t *testing.T) {
	table := Default()
	for _, m := range []Mode{Walk, Bus, Metro, DockBike, Kickboard, Ebike} {
		_, ok := table[m]
		assert.True(t, ok, "missing params for mode %s", m)
	}
}
