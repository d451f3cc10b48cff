package sim

import (
	"context"
	"sync"
)

// TileFactory builds an independent tile for the given seed.
type TileFactory func(seed int64) (Tile, error)

// MetricFactory builds a fresh set of metrics for one run.
type MetricFactory func() []Metric

// Ensemble runs one tile per seed, each in its own goroutine. No state is
// shared between runs.
type Ensemble struct {
	build     TileFactory
	metrics   MetricFactory
	numRuns   int
	seedStart int64
}

func NewEnsemble(build TileFactory, metrics MetricFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			tile, err := e.build(cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}

			sim := New(tile)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
