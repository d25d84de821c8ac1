package decoder

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSolution renders res and its stack trace in the fixed textual
// format consumed by the project's analysis tooling: a header, the
// loading/unloading plan grid, and the two tours.
func WriteSolution(w io.Writer, res Result, tr *trace) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Total cost: %d\n", res.Cost)
	fmt.Fprintf(bw, "Distance traveled: %d\n", res.Distance)
	fmt.Fprintf(bw, "Number of relocations: %d\n\n", res.Relocations)
	fmt.Fprintf(bw, "Loading/unloading plan timeline:\n\n")

	n := tr.n
	for row := n - 1; row >= 0; row-- {
		for _, col := range tr.columns {
			if row < len(col) {
				fmt.Fprintf(bw, "%02d ", col[row])
			} else {
				fmt.Fprint(bw, "   ")
			}
		}
		fmt.Fprint(bw, "\n")
	}
	fmt.Fprint(bw, "\n")

	fmt.Fprint(bw, "Pickup tour  : ")
	writeTour(bw, tr.pickup)
	fmt.Fprint(bw, "Delivery tour: ")
	writeTour(bw, tr.delivery)

	return bw.Flush()
}

func writeTour(bw *bufio.Writer, tour []int) {
	for i, item := range tour {
		if i > 0 {
			fmt.Fprint(bw, " --> ")
		}
		fmt.Fprintf(bw, "%02d", item)
	}
	fmt.Fprint(bw, "\n")
}

// WriteNonDominatedSet renders s in the project's two-column artefact
// format: a "F1 F2" header followed by right-aligned width-10 integer
// cells, one pair per line.
func WriteNonDominatedSet(w io.Writer, s *NonDominatedSet) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%10s%10s\n", "F1", "F2")
	for _, p := range s.Points() {
		fmt.Fprintf(bw, "%10d%10d\n", p[0], p[1])
	}
	return bw.Flush()
}
