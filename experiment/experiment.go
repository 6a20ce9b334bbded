package experiment

import (
	"fmt"
	"runtime"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/fluidsim/fluidsim"
	"github.com/fluidsim/fluidsim/logging"
)

// A TracerFactory creates a tracer for one run of a sweep. It may return nil.
// The label identifies the run within the sweep.
type TracerFactory func(label string, seed uint64) logging.Tracer

// RunMatrix sweeps seeds for every variant in isolation: each run carries
// long and short flows of a single variant. This is how the long-haul
// scenario compares algorithms. Runs execute in parallel; the returned rows
// are ordered by variant, then seed.
func RunMatrix(c *Config, seeds int, newTracer TracerFactory) ([]SummaryRow, error) {
	variants, err := c.variants()
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, len(variants)*seeds)
	g := &errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range variants {
		for s := 0; s < seeds; s++ {
			idx, variant, seed := i*seeds+s, v, uint64(s)
			g.Go(func() error {
				cfg := c.simulationConfig([]fluidsim.Variant{variant})
				if newTracer != nil {
					cfg.Tracer = newTracer(fmt.Sprintf("%s_seed%d", variant, seed), seed)
				}
				sim, err := fluidsim.NewSimulator(cfg, rand.New(rand.NewSource(seed)))
				if err != nil {
					return err
				}
				ticks, completions := sim.Run()
				rows[idx] = summarize(variant, seed, ticks, completions)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// RunShared sweeps seeds with all variants competing on the same link, the
// way the data-center scenario runs Reno against DCTCP. Every run produces
// one row per variant; the link-level columns of those rows are identical,
// the FCT columns are per variant. Rows are ordered by seed, then variant.
func RunShared(c *Config, seeds int, newTracer TracerFactory) ([]SummaryRow, error) {
	variants, err := c.variants()
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, seeds*len(variants))
	g := &errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for s := 0; s < seeds; s++ {
		seed := uint64(s)
		g.Go(func() error {
			cfg := c.simulationConfig(variants)
			if newTracer != nil {
				cfg.Tracer = newTracer(fmt.Sprintf("shared_seed%d", seed), seed)
			}
			sim, err := fluidsim.NewSimulator(cfg, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			ticks, completions := sim.Run()
			for i, v := range variants {
				rows[int(seed)*len(variants)+i] = summarize(v, seed, ticks, completions)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
