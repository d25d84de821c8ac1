package brkga

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/decoder"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/instance"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/rng"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/tour"
)

func smallInstance(t *testing.T) *instance.Instance {
	t.Helper()
	dist := [][]int{
		{0, 10, 20},
		{10, 0, 15},
		{20, 15, 0},
	}
	inst, err := instance.New(2, 1, 100, dist, dist)
	require.NoError(t, err)
	return inst
}

func TestNewRejectsZeroPopulation(t *testing.T) {
	inst := smallInstance(t)
	dec, err := decoder.New(inst, 1, 1)
	require.NoError(t, err)
	_, err = New(inst, dec, tour.NearestNeighborOracle{}, rng.New(1), WithPopulationSize(0))
	require.Error(t, err)
}

func TestNewRejectsZeroElite(t *testing.T) {
	inst := smallInstance(t)
	dec, err := decoder.New(inst, 1, 1)
	require.NoError(t, err)
	_, err = New(inst, dec, tour.NearestNeighborOracle{}, rng.New(1),
		WithPopulationSize(6), WithFractionElite(0.0))
	require.Error(t, err)
}

func TestNewRejectsEliteAndMutantExceedingPopulation(t *testing.T) {
	inst := smallInstance(t)
	dec, err := decoder.New(inst, 1, 1)
	require.NoError(t, err)
	_, err = New(inst, dec, tour.NearestNeighborOracle{}, rng.New(1),
		WithPopulationSize(6), WithFractionElite(0.7), WithFractionMutant(0.6))
	require.Error(t, err)
}

func newTestEngine(t *testing.T, seed uint32, k int) *Engine {
	t.Helper()
	inst := smallInstance(t)
	dec, err := decoder.New(inst, 1, 1)
	require.NoError(t, err)
	e, err := New(inst, dec, tour.NearestNeighborOracle{}, rng.New(seed),
		WithPopulationSize(12), WithFractionElite(0.25), WithFractionMutant(0.25),
		WithRhoE(0.7), WithIslands(k), WithMaxThreads(1))
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))
	return e
}

func TestInitializeSortsEveryPopulation(t *testing.T) {
	e := newTestEngine(t, 42, 1)
	pop := e.current[0]
	for i := 1; i < pop.Size(); i++ {
		assert.LessOrEqual(t, pop.CostAtRank(i-1), pop.CostAtRank(i))
	}
}

func TestEliteFitnessMonotoneAcrossGenerations(t *testing.T) {
	e := newTestEngine(t, 7, 1)
	prevBest := e.BestFitness()
	for g := 0; g < 20; g++ {
		require.NoError(t, e.Evolve(context.Background(), 1))
		best := e.BestFitness()
		assert.LessOrEqual(t, best, prevBest)
		prevBest = best
	}
}

// Scenario D: elite exchange preserves the pre-exchange global best.
func TestExchangeElitePreservesGlobalBest(t *testing.T) {
	e := newTestEngine(t, 99, 2)
	require.NoError(t, e.Evolve(context.Background(), 3))

	before := e.BestFitness()
	require.NoError(t, e.ExchangeElite(1))
	after := e.BestFitness()

	assert.Equal(t, before, after)
}

func TestExchangeEliteRejectsBadM(t *testing.T) {
	e := newTestEngine(t, 1, 2)
	require.Error(t, e.ExchangeElite(0))
	require.Error(t, e.ExchangeElite(12))
}

func TestExchangeEliteRejectsOverflowingM(t *testing.T) {
	e := newTestEngine(t, 1, 3)
	// M*(K-1) = 6*2 = 12 >= p (12): must be rejected.
	require.Error(t, e.ExchangeElite(6))
}

// Scenario E: two engines with the same seed and config produce
// bit-identical best chromosomes after the same number of generations.
func TestReproducibility(t *testing.T) {
	e1 := newTestEngine(t, 269070, 1)
	e2 := newTestEngine(t, 269070, 1)

	require.NoError(t, e1.Evolve(context.Background(), 50))
	require.NoError(t, e2.Evolve(context.Background(), 50))

	assert.Equal(t, e1.BestFitness(), e2.BestFitness())
	assert.Equal(t, e1.BestChromosome(), e2.BestChromosome())
}

// Scenario F: the allele-inheritance rule of generationStep (take the elite
// allele when a draw from the stream is below rho_e) picks the elite parent
// at a rate close to rho_e, so raising rho_e skews inheritance toward the
// elite parent (statistical assertion, large sample). The rule is checked
// over the random stream directly; no generation is run.
func TestBiasedCrossoverSkewsTowardRhoE(t *testing.T) {
	inst := smallInstance(t)
	dec, err := decoder.New(inst, 1, 1)
	require.NoError(t, err)

	sample := func(rhoE float64) float64 {
		stream := rng.New(123)
		const draws = 20000
		fromElite := 0
		for i := 0; i < draws; i++ {
			if stream.NextFloat64() < rhoE {
				fromElite++
			}
		}
		return float64(fromElite) / draws
	}
	_ = dec

	low := sample(0.5)
	high := sample(0.9)

	assert.InDelta(t, 0.5, low, 0.02)
	assert.InDelta(t, 0.9, high, 0.02)
	assert.Greater(t, high, low)
}

func TestEvolveRejectsZeroGenerations(t *testing.T) {
	e := newTestEngine(t, 1, 1)
	require.Error(t, e.Evolve(context.Background(), 0))
}
