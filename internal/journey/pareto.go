package journey

// ParetoFilter implements spec.md 4.6: over (total_time, transfers,
// walk_meters, cost), drop any candidate dominated component-wise (with at
// least one strict inequality). If fewer than 5 remain, the caller should
// fall back to top-5 by score from the full filtered set (see Select).
func ParetoFilter(candidates []Candidate) []Candidate {
	var survivors []Candidate
	for i, c := range candidates {
		dominated := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			if dominates(other, c) {
				dominated = true
				break
			}
		}
		if !dominated {
			survivors = append(survivors, c)
		}
	}
	return survivors
}

// dominates reports whether a dominates b: no worse in every metric and
// strictly better in at least one.
func dominates(a, b Candidate) bool {
	noWorse := a.TotalTimeMin <= b.TotalTimeMin &&
		a.Transfers <= b.Transfers &&
		a.WalkMeters <= b.WalkMeters &&
		a.TotalCost <= b.TotalCost

	strictlyBetter := a.TotalTimeMin < b.TotalTimeMin ||
		a.Transfers < b.Transfers ||
		a.WalkMeters < b.WalkMeters ||
		a.TotalCost < b.TotalCost

	return noWorse && strictlyBetter
}
