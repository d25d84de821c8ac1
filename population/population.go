// Package population holds one island's chromosome storage and its
// fitness-ranked index table, and drives the parallel fan-out used to
// evaluate chromosomes.
package population

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Population is p chromosomes of nKeys genes each. Chromosome storage is
// indexed by a stable BACKING index that never moves; ranking is kept in a
// separate order slice (order[rank] = backing index), so sorting permutes
// only that slice and never touches the chromosome contents.
type Population struct {
	nKeys int
	p     int

	chromosomes [][]float64
	cost        []int
	order       []int
}

// New allocates p chromosomes of length nKeys. Contents are left
// unspecified (zero-valued); callers are expected to fill them before
// first use.
func New(nKeys, p int) (*Population, error) {
	if nKeys <= 0 {
		return nil, fmt.Errorf("population: n_keys must be > 0, got %d", nKeys)
	}
	if p <= 0 {
		return nil, fmt.Errorf("population: p must be > 0, got %d", p)
	}

	chromosomes := make([][]float64, p)
	order := make([]int, p)
	for i := range chromosomes {
		chromosomes[i] = make([]float64, nKeys)
		order[i] = i
	}

	return &Population{
		nKeys:       nKeys,
		p:           p,
		chromosomes: chromosomes,
		cost:        make([]int, p),
		order:       order,
	}, nil
}

// Size returns p.
func (pop *Population) Size() int { return pop.p }

// NKeys returns the chromosome length.
func (pop *Population) NKeys() int { return pop.nKeys }

// Chromosome returns the backing slice for chromosome index i (by BACKING
// index, not rank). Mutating the returned slice mutates the population.
func (pop *Population) Chromosome(i int) []float64 {
	return pop.chromosomes[i]
}

// Cost returns the recorded cost for chromosome backing index i, bypassing
// the rank ordering.
func (pop *Population) Cost(i int) int {
	return pop.cost[i]
}

// SetCost records the decoded cost for the chromosome at backing index i.
// It does not re-sort the order table; call SortByFitness afterward.
func (pop *Population) SetCost(i, cost int) {
	pop.cost[i] = cost
}

// SortByFitness orders the ranking ascending by cost, breaking ties by
// backing index so that ranking is deterministic regardless of the sort
// algorithm's stability.
func (pop *Population) SortByFitness() {
	sort.Slice(pop.order, func(i, j int) bool {
		a, b := pop.order[i], pop.order[j]
		if pop.cost[a] != pop.cost[b] {
			return pop.cost[a] < pop.cost[b]
		}
		return a < b
	})
}

// BestFitness returns the lowest cost in the population. The table must
// have been sorted first.
func (pop *Population) BestFitness() int {
	return pop.cost[pop.order[0]]
}

// BestChromosome returns the chromosome achieving BestFitness. The table
// must have been sorted first.
func (pop *Population) BestChromosome() []float64 {
	return pop.chromosomes[pop.order[0]]
}

// ChromosomeAtRank returns the i-th best chromosome (0-indexed). The table
// must have been sorted first.
func (pop *Population) ChromosomeAtRank(i int) []float64 {
	return pop.chromosomes[pop.order[i]]
}

// CostAtRank returns the cost of the i-th best chromosome.
func (pop *Population) CostAtRank(i int) int {
	return pop.cost[pop.order[i]]
}

// BackingIndexAtRank returns the storage index holding the i-th best
// chromosome; callers that need to look up a chromosome by rank across a
// crossover or exchange step use this indirection instead of copying.
func (pop *Population) BackingIndexAtRank(i int) int {
	return pop.order[i]
}

// CopyFrom overwrites chromosome dstIndex with the contents of
// src.ChromosomeAtRank(srcRank) and the associated cost.
func (pop *Population) CopyFrom(dstIndex int, src *Population, srcRank int) {
	copy(pop.chromosomes[dstIndex], src.ChromosomeAtRank(srcRank))
	pop.cost[dstIndex] = src.CostAtRank(srcRank)
}

// EvaluateRange decodes every backing index in [lo, hi) via decode,
// fanning out across up to maxThreads workers. decode must not draw from
// any shared random stream: all GA sampling must already have happened
// sequentially before EvaluateRange is called.
func (pop *Population) EvaluateRange(ctx context.Context, lo, hi, maxThreads int, decode func(chromosome []float64) (int, error)) error {
	if lo < 0 || hi > pop.p || lo > hi {
		return fmt.Errorf("population: invalid evaluation range [%d, %d) for size %d", lo, hi, pop.p)
	}

	g, ctx := errgroup.WithContext(ctx)
	if maxThreads > 0 {
		g.SetLimit(maxThreads)
	}

	for i := lo; i < hi; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			cost, err := decode(pop.chromosomes[i])
			if err != nil {
				return fmt.Errorf("population: decoding chromosome %d: %w", i, err)
			}
			pop.cost[i] = cost
			return nil
		})
	}

	return g.Wait()
}
