// Package brkga implements the biased random-key genetic algorithm engine:
// K independent double-buffered populations evolved generation by
// generation, with an optional periodic elite exchange between islands.
package brkga

import (
	"context"
	"fmt"
	"time"

	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/decoder"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/instance"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/population"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/rng"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/tour"
)

// Engine owns K populations (and their double-buffered scratch twins), the
// decoder, the instance, the tour oracle used for the warm-start seed, and
// the single random stream that drives every GA decision.
type Engine struct {
	cfg Config
	pe  int
	pm  int

	dec    *decoder.Decoder
	inst   *instance.Instance
	oracle tour.Oracle
	rng    *rng.Stream

	current []*population.Population
	next    []*population.Population
}

// New constructs an engine. nKeys is taken from dec.Len(); it cannot be
// overridden by an option.
func New(inst *instance.Instance, dec *decoder.Decoder, oracle tour.Oracle, stream *rng.Stream, options ...Option) (*Engine, error) {
	cfg := defaultConfig()
	cfg.NKeys = dec.Len()
	for _, opt := range options {
		opt(&cfg)
	}

	pe := int(cfg.FractionElite * float64(cfg.P))
	pm := int(cfg.FractionMutant * float64(cfg.P))

	if cfg.NKeys == 0 || cfg.P == 0 || pe == 0 || cfg.K == 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf(
			"n_keys, p, derived pe, and K must all be nonzero (n_keys=%d p=%d pe=%d K=%d)",
			cfg.NKeys, cfg.P, pe, cfg.K)}
	}
	if pe > cfg.P {
		return nil, &ConfigError{Reason: fmt.Sprintf("pe (%d) must not exceed p (%d)", pe, cfg.P)}
	}
	if pm > cfg.P {
		return nil, &ConfigError{Reason: fmt.Sprintf("pm (%d) must not exceed p (%d)", pm, cfg.P)}
	}
	if pe+pm > cfg.P {
		return nil, &ConfigError{Reason: fmt.Sprintf("pe + pm (%d) must not exceed p (%d)", pe+pm, cfg.P)}
	}

	e := &Engine{cfg: cfg, pe: pe, pm: pm, dec: dec, inst: inst, oracle: oracle, rng: stream}

	e.current = make([]*population.Population, cfg.K)
	e.next = make([]*population.Population, cfg.K)
	for i := 0; i < cfg.K; i++ {
		cur, err := population.New(cfg.NKeys, cfg.P)
		if err != nil {
			return nil, err
		}
		nxt, err := population.New(cfg.NKeys, cfg.P)
		if err != nil {
			return nil, err
		}
		e.current[i] = cur
		e.next[i] = nxt
	}

	return e, nil
}

// Initialize fills every chromosome with uniform keys, warm-starts
// chromosome 0 of population 0 from the tour oracle, then evaluates and
// sorts every population. All random draws happen before any evaluation,
// so the draw sequence does not depend on max_threads.
func (e *Engine) Initialize(ctx context.Context) error {
	for idx := 0; idx < e.cfg.K; idx++ {
		pop := e.current[idx]
		for i := 0; i < pop.Size(); i++ {
			chrom := pop.Chromosome(i)
			for j := range chrom {
				chrom[j] = e.rng.NextFloat64()
			}
		}
		if idx == 0 {
			if err := e.warmStart(pop); err != nil {
				return err
			}
		}
	}

	for idx := 0; idx < e.cfg.K; idx++ {
		if err := e.current[idx].EvaluateRange(ctx, 0, e.cfg.P, e.cfg.MaxThreads, e.decodeCost); err != nil {
			return err
		}
		e.current[idx].SortByFitness()
	}
	return nil
}

// warmStart seeds chromosome 0 of pop with a Hamiltonian cycle from the
// tour oracle, laid out so Phase A recovers the cycle's pickup order and
// every stack-op block decodes to the identity permutation (zero
// relocations).
func (e *Engine) warmStart(pop *population.Population) error {
	combined := e.inst.CombinedDistance()
	_, cycle, err := e.oracle.Solve(e.inst.N+1, combined)
	if err != nil {
		return fmt.Errorf("brkga: warm-start tour: %w", err)
	}

	start := 0
	for i, node := range cycle {
		if node == 0 {
			start = i
			break
		}
	}
	rho := make([]int, 0, len(cycle))
	for i := 0; i < len(cycle); i++ {
		rho = append(rho, cycle[(start+i)%len(cycle)])
	}
	rho = rho[1:] // drop the leading depot visit

	chrom := pop.Chromosome(0)
	for i, node := range rho {
		chrom[node-1] = float64(i) * 0.001
	}

	layout := e.dec.Layout
	for _, br := range layout.SBlocks {
		fillAscendingBlock(chrom, br)
	}
	for _, br := range layout.TBlocks {
		fillAscendingBlock(chrom, br)
	}
	return nil
}

type boundedBlock interface {
	Start() int
	Width() int
}

func fillAscendingBlock(chrom []float64, br boundedBlock) {
	s, w := br.Start(), br.Width()
	for i := 0; i < w; i++ {
		chrom[s+i] = float64(i) * 0.001
	}
}

func (e *Engine) decodeCost(keys []float64) (int, error) {
	res, err := e.dec.Decode(keys)
	if err != nil {
		return 0, err
	}
	return res.Cost, nil
}

// Evolve runs generations generation steps across every population, in
// island order, sequentially.
func (e *Engine) Evolve(ctx context.Context, generations int) error {
	if generations <= 0 {
		return &ArgumentError{Reason: fmt.Sprintf("generations must be > 0, got %d", generations)}
	}
	for g := 0; g < generations; g++ {
		for idx := 0; idx < e.cfg.K; idx++ {
			if err := e.generationStep(ctx, idx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) generationStep(ctx context.Context, idx int) error {
	cur := e.current[idx]
	nxt := e.next[idx]
	p := e.cfg.P

	for i := 0; i < e.pe; i++ {
		nxt.CopyFrom(i, cur, i)
	}

	for i := e.pe; i < p-e.pm; i++ {
		eliteRank := int(e.rng.NextBounded(uint32(e.pe - 1)))
		nonEliteRank := e.pe + int(e.rng.NextBounded(uint32(p-1-e.pe)))

		eliteChrom := cur.ChromosomeAtRank(eliteRank)
		nonEliteChrom := cur.ChromosomeAtRank(nonEliteRank)
		child := nxt.Chromosome(i)

		for j := 0; j < e.cfg.NKeys; j++ {
			if e.rng.NextFloat64() < e.cfg.RhoE {
				child[j] = eliteChrom[j]
			} else {
				child[j] = nonEliteChrom[j]
			}
		}
	}

	for i := p - e.pm; i < p; i++ {
		child := nxt.Chromosome(i)
		for j := 0; j < e.cfg.NKeys; j++ {
			child[j] = e.rng.NextFloat64()
		}
	}

	if err := nxt.EvaluateRange(ctx, e.pe, p, e.cfg.MaxThreads, e.decodeCost); err != nil {
		return err
	}
	nxt.SortByFitness()

	e.current[idx], e.next[idx] = e.next[idx], e.current[idx]
	return nil
}

// ExchangeElite copies the top m chromosomes of every population into the
// bottom ranks of every other population, rightmost rank first.
func (e *Engine) ExchangeElite(m int) error {
	p := e.cfg.P
	k := e.cfg.K

	if m <= 0 || m >= p {
		return &ArgumentError{Reason: fmt.Sprintf("M must satisfy 0 < M < p, got %d", m)}
	}
	if m*(k-1) >= p {
		return &ArgumentError{Reason: fmt.Sprintf("M*(K-1) must be < p, got %d", m*(k-1))}
	}

	type snapshot struct {
		chroms [][]float64
		costs  []int
	}
	batches := make([]snapshot, k)
	for j := 0; j < k; j++ {
		chroms := make([][]float64, m)
		costs := make([]int, m)
		for r := 0; r < m; r++ {
			src := e.current[j].ChromosomeAtRank(r)
			cp := make([]float64, len(src))
			copy(cp, src)
			chroms[r] = cp
			costs[r] = e.current[j].CostAtRank(r)
		}
		batches[j] = snapshot{chroms: chroms, costs: costs}
	}

	for i := 0; i < k; i++ {
		destRank := p - 1
		for j := 0; j < k; j++ {
			if j == i {
				continue
			}
			for r := 0; r < m; r++ {
				destBacking := e.current[i].BackingIndexAtRank(destRank)
				copy(e.current[i].Chromosome(destBacking), batches[j].chroms[r])
				e.current[i].SetCost(destBacking, batches[j].costs[r])
				destRank--
			}
		}
		e.current[i].SortByFitness()
	}
	return nil
}

// BestFitness returns the minimum cost across every population. Every
// population must have been sorted at least once.
func (e *Engine) BestFitness() int {
	best := e.current[0].BestFitness()
	for i := 1; i < e.cfg.K; i++ {
		if c := e.current[i].BestFitness(); c < best {
			best = c
		}
	}
	return best
}

// BestChromosome returns the chromosome achieving BestFitness, breaking
// ties by lowest population index.
func (e *Engine) BestChromosome() []float64 {
	bestIdx := 0
	best := e.current[0].BestFitness()
	for i := 1; i < e.cfg.K; i++ {
		if c := e.current[i].BestFitness(); c < best {
			best = c
			bestIdx = i
		}
	}
	return e.current[bestIdx].BestChromosome()
}

// Run drives Evolve(ctx, 1) in a loop until budget elapses or ctx is
// cancelled, layering context-based cancellation over the host's
// wall-clock polling loop.
func (e *Engine) Run(ctx context.Context, budget time.Duration) error {
	deadline := time.Now().Add(budget)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !time.Now().Before(deadline) {
			return nil
		}
		if err := e.Evolve(ctx, 1); err != nil {
			return err
		}
	}
}
