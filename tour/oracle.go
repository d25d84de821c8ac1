// Package tour provides the TourOracle capability consumed by the BRKGA
// engine to seed one warm-start chromosome: a Hamiltonian cycle over the
// combined distance matrix. The BRKGA core is agnostic to whether the
// oracle is exact or heuristic; this package supplies a heuristic one.
package tour

import "fmt"

// Oracle produces a Hamiltonian cycle over n nodes (0..n-1) given a
// symmetric distance matrix, along with its total cost.
type Oracle interface {
	Solve(n int, dist [][]int) (cost int, cycle []int, err error)
}

// Error reports malformed oracle input.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tour: %s", e.Reason)
}
