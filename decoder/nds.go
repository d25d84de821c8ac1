package decoder

// NonDominatedSet accumulates (distance, relocations) pairs seen across a
// run and keeps only the Pareto-efficient ones: no kept pair is worse on
// both coordinates than another kept pair. Ported from the original
// solver's non_dominated_set.h.
type NonDominatedSet struct {
	points []ndsPoint
}

type ndsPoint struct {
	distance    int
	relocations int
}

// Add inserts (distance, relocations), dropping it if dominated by an
// existing point and removing any existing points it dominates.
func (s *NonDominatedSet) Add(distance, relocations int) {
	cand := ndsPoint{distance: distance, relocations: relocations}

	for _, p := range s.points {
		if dominates(p, cand) {
			return
		}
	}

	kept := s.points[:0]
	for _, p := range s.points {
		if !dominates(cand, p) {
			kept = append(kept, p)
		}
	}
	s.points = append(kept, cand)
}

// dominates reports whether a is at least as good as b on both coordinates
// and strictly better on at least one.
func dominates(a, b ndsPoint) bool {
	if a.distance > b.distance || a.relocations > b.relocations {
		return false
	}
	return a.distance < b.distance || a.relocations < b.relocations
}

// Len returns the number of non-dominated points currently kept.
func (s *NonDominatedSet) Len() int {
	return len(s.points)
}

// Points returns a copy of the kept (distance, relocations) pairs, sorted
// by increasing distance.
func (s *NonDominatedSet) Points() [][2]int {
	out := make([][2]int, len(s.points))
	for i, p := range s.points {
		out[i] = [2]int{p.distance, p.relocations}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j][0] < out[j-1][0]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
