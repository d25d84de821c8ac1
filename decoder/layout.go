package decoder

import "fmt"

// blockRange is a half-open [start, start+width) slice of chromosome keys.
type blockRange struct {
	start int
	width int
}

// Start returns the block's first chromosome index.
func (br blockRange) Start() int { return br.start }

// Width returns the number of chromosome positions the block occupies.
func (br blockRange) Width() int { return br.width }

// Layout precomputes the chromosome's block boundaries for a given (N, L),
// so that Decode does no partition arithmetic in its hot loop. The block
// order is: P (length N), S_1..S_N (pickup stack-op steps), T_1..T_N
// (delivery stack-op steps).
type Layout struct {
	N, L int

	// SBlocks[k-1] is the S_k block, width min(k, L+1).
	SBlocks []blockRange
	// TBlocks[k-1] is the T_k block, width min(N-k+1, L+1).
	TBlocks []blockRange

	// Total is G, the total chromosome length.
	Total int
}

// NewLayout validates (N, L) and computes the block layout.
func NewLayout(n, l int) (*Layout, error) {
	if n < 1 {
		return nil, fmt.Errorf("decoder: N must be >= 1, got %d", n)
	}
	if l < 0 {
		return nil, fmt.Errorf("decoder: L must be >= 0, got %d", l)
	}

	layout := &Layout{N: n, L: l}
	offset := n // P block occupies [0, n)

	layout.SBlocks = make([]blockRange, n)
	for k := 1; k <= n; k++ {
		w := min(k, l+1)
		layout.SBlocks[k-1] = blockRange{start: offset, width: w}
		offset += w
	}

	layout.TBlocks = make([]blockRange, n)
	for k := 1; k <= n; k++ {
		w := min(n-k+1, l+1)
		layout.TBlocks[k-1] = blockRange{start: offset, width: w}
		offset += w
	}

	layout.Total = offset
	return layout, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
