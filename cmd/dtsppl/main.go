// Command dtsppl runs the BRKGA solver for the double-tour
// pickup-and-delivery problem with a bounded-reloading-depth cargo stack.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/brkga"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/decoder"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/instance"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/rng"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/tour"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/viz"
)

func main() {
	pickupPath := flag.String("pickup", "", "path to the pickup area coordinate file")
	deliveryPath := flag.String("delivery", "", "path to the delivery area coordinate file")
	n := flag.Int("n", 0, "number of items")
	l := flag.Int("l", 0, "reloading depth")
	h := flag.Int("h", 1, "relocation cost weight")
	seed := flag.Uint("seed", 269070, "random seed")
	islands := flag.Int("islands", 1, "number of independent populations (K)")
	threads := flag.Int("threads", 1, "max worker threads per fitness-evaluation fan-out")
	budget := flag.Duration("budget", time.Hour, "wall-clock budget for the run")
	output := flag.String("output", "", "path to write the solution file (optional)")
	svgPath := flag.String("svg", "", "path to write an SVG diagram of the best solution (optional, requires a coordinate-based instance)")

	population := flag.Int("population", 0, "population size per island (default: 200 * chromosome length)")
	fractionElite := flag.Float64("fraction-elite", 0.10, "elite fraction of each population")
	fractionMutant := flag.Float64("fraction-mutant", 0.25, "mutant fraction of each population")
	rhoE := flag.Float64("rho-e", 0.70, "elite-inheritance probability during crossover")
	exchangeEvery := flag.Int("exchange-every", 0, "generations between elite exchanges (0 disables)")
	exchangeM := flag.Int("exchange-m", 1, "number of chromosomes exchanged per island pair")

	flag.Parse()

	if err := run(runConfig{
		pickupPath: *pickupPath, deliveryPath: *deliveryPath,
		n: *n, l: *l, h: *h,
		seed: uint32(*seed), islands: *islands, threads: *threads,
		budget: *budget, outputPath: *output, svgPath: *svgPath,
		population: *population, fractionElite: *fractionElite, fractionMutant: *fractionMutant,
		rhoE: *rhoE, exchangeEvery: *exchangeEvery, exchangeM: *exchangeM,
	}); err != nil {
		log.Fatalf("dtsppl: %v", err)
	}
}

type runConfig struct {
	pickupPath, deliveryPath string
	n, l, h                  int
	seed                     uint32
	islands, threads         int
	budget                   time.Duration
	outputPath               string
	svgPath                  string
	population               int
	fractionElite            float64
	fractionMutant           float64
	rhoE                     float64
	exchangeEvery, exchangeM int
}

func run(cfg runConfig) error {
	if cfg.pickupPath == "" || cfg.deliveryPath == "" {
		return fmt.Errorf("both --pickup and --delivery are required")
	}
	if cfg.n <= 0 {
		return fmt.Errorf("--n must be > 0")
	}

	loader := instance.Loader{N: cfg.n, L: cfg.l, H: cfg.h}
	inst, err := loader.Load(cfg.pickupPath, cfg.deliveryPath)
	if err != nil {
		return fmt.Errorf("loading instance: %w", err)
	}

	dec, err := decoder.New(inst, 1, 1)
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}

	population := cfg.population
	if population <= 0 {
		population = 200 * dec.Len()
	}

	stream := rng.New(cfg.seed)
	oracle := tour.NearestNeighborOracle{}

	engine, err := brkga.New(inst, dec, oracle, stream,
		brkga.WithPopulationSize(population),
		brkga.WithFractionElite(cfg.fractionElite),
		brkga.WithFractionMutant(cfg.fractionMutant),
		brkga.WithRhoE(cfg.rhoE),
		brkga.WithIslands(cfg.islands),
		brkga.WithMaxThreads(cfg.threads),
	)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	ctx := context.Background()
	if err := engine.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}

	started := time.Now()
	lastBest := engine.BestFitness()
	log.Printf("t=%.1fs best=%d (initial)", time.Since(started).Seconds(), lastBest)

	deadline := started.Add(cfg.budget)
	generation := 0
	for time.Now().Before(deadline) {
		if err := engine.Evolve(ctx, 1); err != nil {
			return fmt.Errorf("evolving: %w", err)
		}
		generation++

		if cfg.exchangeEvery > 0 && cfg.islands > 1 && generation%cfg.exchangeEvery == 0 {
			if err := engine.ExchangeElite(cfg.exchangeM); err != nil {
				return fmt.Errorf("exchanging elites: %w", err)
			}
		}

		if best := engine.BestFitness(); best < lastBest {
			lastBest = best
			log.Printf("t=%.1fs best=%d", time.Since(started).Seconds(), lastBest)
		}
	}

	best := engine.BestChromosome()
	res, err := dec.Decode(best)
	if err != nil {
		return fmt.Errorf("decoding best chromosome: %w", err)
	}
	fmt.Printf("cost=%d distance=%d relocations=%d\n", res.Cost, res.Distance, res.Relocations)

	if cfg.outputPath != "" {
		if err := writeSolutionFile(cfg.outputPath, dec, best); err != nil {
			return fmt.Errorf("writing solution file: %w", err)
		}
	}
	if cfg.svgPath != "" {
		if err := viz.VisualizeSolution(inst, res, cfg.svgPath); err != nil {
			return fmt.Errorf("writing svg diagram: %w", err)
		}
	}
	return nil
}

func writeSolutionFile(path string, dec *decoder.Decoder, keys []float64) error {
	res, tr, err := dec.DecodeWithTrace(keys)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return decoder.WriteSolution(f, res, tr)
}
