package network

import "sort"

// BuildTimetable converts a set of trips (each carrying one StopTime per
// stop position) into the parallel dep/arr matrices the solver scans,
// dropping any trip with a bad row (arr < dep at any position, or a
// non-monotone position) as a data-inconsistency per the error-handling
// design, and returning the count of dropped trips so the loader can log a
// single counted warning.
func BuildTimetable(stopCount int, trips []Trip) (Timetable, int) {
	valid := make([]Trip, 0, len(trips))
	dropped := 0
	for _, t := range trips {
		if len(t.StopTimes) != stopCount {
			dropped++
			continue
		}
		ok := true
		for i, st := range t.StopTimes {
			if st.Arrival < st.Departure {
				ok = false
				break
			}
			if i > 0 {
				prev := t.StopTimes[i-1]
				if st.Departure < prev.Departure || st.Arrival < prev.Arrival {
					ok = false
					break
				}
			}
		}
		if !ok {
			dropped++
			continue
		}
		valid = append(valid, t)
	}

	// Sort trips by first-stop departure so the solver's binary search
	// over the trip axis (spec.md 4.5, REDESIGN FLAGS item 4) is valid.
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].StopTimes[0].Departure < valid[j].StopTimes[0].Departure
	})

	tt := Timetable{
		Dep:        make([][]int, stopCount),
		Arr:        make([][]int, stopCount),
		ServiceIDs: make([]string, len(valid)),
	}
	for s := 0; s < stopCount; s++ {
		tt.Dep[s] = make([]int, len(valid))
		tt.Arr[s] = make([]int, len(valid))
	}
	for tIdx, t := range valid {
		tt.ServiceIDs[tIdx] = t.ServiceID
		for s, st := range t.StopTimes {
			tt.Dep[s][tIdx] = st.Departure
			tt.Arr[s][tIdx] = st.Arrival
		}
	}
	return tt, dropped
}
