package experiment

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/accretion/internal/dynamo"
)

// Ensemble runs the experiment once per seed cfg.Seed, cfg.Seed+1, ...,
// each on its own engine. metrics is called once per run so that no metric
// is shared between goroutines. workers <= 0 uses GOMAXPROCS.
func Ensemble(ctx context.Context, cfg Config, runs, workers int, metrics func() []dynamo.Metric) ([]*dynamo.Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*dynamo.Result, runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			c := cfg
			c.Seed = cfg.Seed + int64(i)

			exp := New(c)
			var ms []dynamo.Metric
			if metrics != nil {
				ms = metrics()
			}
			if err := exp.Setup(ms); err != nil {
				return err
			}

			res, err := exp.Run(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type Summary struct {
	Runs            int
	MeanSurvivors   float64
	StdSurvivors    float64
	MinSurvivors    int
	MaxSurvivors    int
	MeanEnergyDrift float64
}

func Summarize(results []*dynamo.Result) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}

	survivors := make([]float64, len(results))
	drift := make([]float64, len(results))
	s.MinSurvivors = results[0].Survivors
	for i, r := range results {
		survivors[i] = float64(r.Survivors)
		drift[i] = r.EnergyDrift
		s.MinSurvivors = min(s.MinSurvivors, r.Survivors)
		s.MaxSurvivors = max(s.MaxSurvivors, r.Survivors)
	}

	s.MeanSurvivors, s.StdSurvivors = stat.MeanStdDev(survivors, nil)
	if len(results) < 2 {
		s.StdSurvivors = 0
	}
	s.MeanEnergyDrift = stat.Mean(drift, nil)
	return s
}
