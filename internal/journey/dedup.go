package journey

import "fmt"

// Dedup implements spec.md 4.6's deduplication: two candidates with
// identical ordered (from, to, route_name) transit sequences are
// deduplicated keeping the one with shorter total walk distance.
//
// The sequence key truncates to whole minutes (the original's rounding,
// kept per the open-question decision not to patch it: "can coalesce
// distinct journeys that differ by < 30s of schedule drift").
func Dedup(candidates []Candidate) []Candidate {
	best := make(map[string]Candidate)
	var order []string

	for _, c := range candidates {
		key := transitSequenceKey(c)
		existing, ok := best[key]
		if !ok {
			best[key] = c
			order = append(order, key)
			continue
		}
		if c.WalkMeters < existing.WalkMeters {
			best[key] = c
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

func transitSequenceKey(c Candidate) string {
	key := ""
	for _, l := range c.Legs {
		if l.Type != LegTransit {
			continue
		}
		key += fmt.Sprintf("|%d>%d@%s/%d", l.FromStop.ID, l.ToStop.ID, l.RouteName, l.StartMin)
	}
	return key
}
