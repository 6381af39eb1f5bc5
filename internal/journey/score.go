package journey

import "sort"

// Score min-max normalizes each of the four metrics across the candidate
// set (higher is better) and returns the weighted sum per the user's
// preference weights, plus a small bonus proportional to the user's
// per-mode mobility preference for each carried mode, ported from
// PART2_HYBRID.py._calculate_route_scores.
func Score(candidates []Candidate, pref Preference) []float64 {
	if len(candidates) == 0 {
		return nil
	}

	times := extract(candidates, func(c Candidate) float64 { return float64(c.TotalTimeMin) })
	transfers := extract(candidates, func(c Candidate) float64 { return float64(c.Transfers) })
	walks := extract(candidates, func(c Candidate) float64 { return c.WalkMeters })
	costs := extract(candidates, func(c Candidate) float64 { return c.TotalCost })

	timeNorm := minMaxInvert(times)
	transferNorm := minMaxInvert(transfers)
	walkNorm := minMaxInvert(walks)
	costNorm := minMaxInvert(costs)

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		s := pref.WeightTime*timeNorm[i] +
			pref.WeightTransfers*transferNorm[i] +
			pref.WeightWalk*walkNorm[i] +
			pref.WeightCost*costNorm[i]

		for _, mode := range c.UsedMobilityModes {
			if bonus, ok := pref.MobilityPreference[mode]; ok {
				s += bonus * 0.1
			}
		}
		scores[i] = s
	}
	return scores
}

func extract(candidates []Candidate, f func(Candidate) float64) []float64 {
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = f(c)
	}
	return out
}

// minMaxInvert normalizes values to [0,1] where 1 is best (lowest value),
// since every metric here (time, transfers, walk, cost) is "less is
// better". A constant slice normalizes to all-1s (no metric to discriminate
// on) rather than dividing by zero.
func minMaxInvert(values []float64) []float64 {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(values))
	if max == min {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i, v := range values {
		out[i] = 1 - (v-min)/(max-min)
	}
	return out
}

// Select applies the Pareto filter, falls back to top-5 by score when
// fewer than 5 survive, and returns the final top 5 in descending score
// order, per spec.md 4.6.
func Select(candidates []Candidate, pref Preference) []Candidate {
	deduped := Dedup(candidates)
	survivors := ParetoFilter(deduped)

	pool := survivors
	if len(pool) < 5 {
		pool = deduped
	}

	scores := Score(pool, pref)
	type ranked struct {
		c Candidate
		s float64
	}
	rankedList := make([]ranked, len(pool))
	for i, c := range pool {
		rankedList[i] = ranked{c, scores[i]}
	}
	sort.Slice(rankedList, func(i, j int) bool { return rankedList[i].s > rankedList[j].s })

	limit := 5
	if len(rankedList) < limit {
		limit = len(rankedList)
	}
	out := make([]Candidate, limit)
	for i := 0; i < limit; i++ {
		out[i] = rankedList[i].c
	}
	return out
}
