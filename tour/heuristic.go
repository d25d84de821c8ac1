package tour

// NearestNeighborOracle builds a Hamiltonian cycle by greedy nearest-
// neighbor construction from node 0, then improves it with first-improvement
// 2-opt. It is deterministic: the same distance matrix always yields the
// same cycle, which keeps BRKGA's warm-start chromosome reproducible without
// drawing from the engine's RandomStream (mirrors the original solver's
// TSPSolver, a collaborator the engine treats as opaque).
type NearestNeighborOracle struct{}

// Solve returns a Hamiltonian cycle as the n-node sequence (0, c1, ...,
// c_{n-1}), with the closing edge back to 0 implied rather than repeated,
// and its cost including that closing edge.
func (NearestNeighborOracle) Solve(n int, dist [][]int) (int, []int, error) {
	if n < 1 {
		return 0, nil, &Error{Reason: "n must be >= 1"}
	}
	if len(dist) != n {
		return 0, nil, &Error{Reason: "distance matrix row count must equal n"}
	}
	for i, row := range dist {
		if len(row) != n {
			return 0, nil, &Error{Reason: "distance matrix must be square"}
		}
		_ = i
	}

	cycle := nearestNeighborTour(n, dist)
	twoOpt(cycle, dist)

	cost := tourCost(cycle, dist)
	return cost, cycle, nil
}

func nearestNeighborTour(n int, dist [][]int) []int {
	visited := make([]bool, n)
	tour := make([]int, 0, n)

	cur := 0
	visited[0] = true
	tour = append(tour, cur)

	for len(tour) < n {
		best := -1
		bestDist := 0
		for cand := 0; cand < n; cand++ {
			if visited[cand] {
				continue
			}
			if best == -1 || dist[cur][cand] < bestDist {
				best = cand
				bestDist = dist[cur][cand]
			}
		}
		visited[best] = true
		tour = append(tour, best)
		cur = best
	}
	return tour
}

// twoOpt repeatedly reverses segments that shorten the cycle, until no
// single reversal improves it (first-improvement, not best-improvement).
func twoOpt(tour []int, dist [][]int) {
	n := len(tour)
	if n < 4 {
		return
	}
	improved := true
	for improved {
		improved = false
		for i := 0; i < n-1; i++ {
			a, b := tour[i], tour[i+1]
			for j := i + 2; j < n; j++ {
				c := tour[j]
				d := tour[(j+1)%n]
				if i == 0 && j == n-1 {
					continue
				}
				before := dist[a][b] + dist[c][d]
				after := dist[a][c] + dist[b][d]
				if after < before {
					reverse(tour[i+1 : j+1])
					improved = true
					b = tour[i+1]
				}
			}
		}
	}
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func tourCost(tour []int, dist [][]int) int {
	cost := 0
	n := len(tour)
	for i := 0; i < n; i++ {
		cost += dist[tour[i]][tour[(i+1)%n]]
	}
	return cost
}
