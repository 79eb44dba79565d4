package main

import (
	"context"
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/accretion/internal/analysis"
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/experiment"
)

var benchSizes = []int{25, 50, 100, 200, 400}

func benchEngine(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("ticks") && configFile == "" {
		cfg.Ticks = 500
	}

	fmt.Fprintf(cmd.OutOrStdout(), "benchmarking %s with %s, %d ticks\n\n", cfg.Scenario, cfg.Integrator, cfg.Ticks)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORBITERS\tSURVIVORS\tTIME\tTICKS/SEC")

	for _, n := range benchSizes {
		c := experiment.FromConfig(cfg)
		c.Orbit.OrbiterCount = n
		c.SampleEvery = 0

		exp := experiment.New(c)
		if err := exp.Setup(nil); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			n, result.Survivors, elapsed.Round(time.Microsecond), float64(result.StepsTaken)/elapsed.Seconds())
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing on %s, seed %d, %d ticks, dt=%g\n\n", cfg.Scenario, cfg.Seed, cfg.Ticks, cfg.Dt)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSURVIVORS\tENERGY DRIFT\tMASS DRIFT\tMOMENTUM DRIFT\tCONTAINMENT\tTIME")

	for _, name := range names {
		c := experiment.FromConfig(cfg)
		c.Integrator = name

		exp := experiment.New(c)
		if err := exp.Setup(experiment.DefaultMetrics(c.Orbit.G, c.Width)); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		elapsed := time.Since(start)

		m := result.Metrics
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3e\t%.3e\t%.3f\t%v\n",
			name, result.Survivors, m["energy_drift"], m["mass_drift"], m["momentum_drift"],
			m["containment"], elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	c := experiment.FromConfig(cfg)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ensemble of %d seeds from %d: %s, %d ticks\n\n", runs, c.Seed, c.Scenario, c.Ticks)

	ctx, stop := interruptContext()
	defer stop()

	start := time.Now()
	results, err := experiment.Ensemble(ctx, c, runs, workers, func() []dynamo.Metric {
		return experiment.DefaultMetrics(c.Orbit.G, c.Width)
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSURVIVORS\tMERGES\tENERGY DRIFT\tCONTAINMENT")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3e\t%.3f\n",
			c.Seed+int64(i), r.Survivors, len(r.Events), r.EnergyDrift, r.Metrics["containment"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := experiment.Summarize(results)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "survivors: %.2f ± %.2f (min %d, max %d)\n", s.MeanSurvivors, s.StdSurvivors, s.MinSurvivors, s.MaxSurvivors)
	fmt.Fprintf(out, "mean energy drift: %.3e\n", s.MeanEnergyDrift)
	fmt.Fprintf(out, "elapsed: %v\n", elapsed.Round(time.Millisecond))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", sweepSteps)
	}

	var apply func(c *experiment.Config, v float64)
	switch sweepParam {
	case "damping":
		apply = func(c *experiment.Config, v float64) { c.Orbit.VelocityDamping = v }
	case "deviation":
		// degrees, like the config file
		apply = func(c *experiment.Config, v float64) { c.Orbit.MaxAngleDeviation = v * math.Pi / 180 }
	default:
		return fmt.Errorf("unknown sweep parameter %q (damping, deviation)", sweepParam)
	}

	base := experiment.FromConfig(cfg)
	build := func(v float64) *dynamo.Engine {
		c := base
		apply(&c, v)
		exp := experiment.New(c)
		if err := exp.Setup(nil); err != nil {
			return nil
		}
		return exp.Engine()
	}

	every := cfg.SampleEvery
	if every <= 0 {
		every = 10
	}
	params := analysis.Linspace(sweepFrom, sweepTo, sweepSteps)
	points := analysis.Sweep(params, build, cfg.Dt, cfg.Ticks/2, cfg.Ticks-cfg.Ticks/2, every)
	if len(points) == 0 {
		return fmt.Errorf("no valid %s values in [%g, %g]", sweepParam, sweepFrom, sweepTo)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "live count against %s, %g .. %g (%d values, %d skipped)\n\n",
		sweepParam, sweepFrom, sweepTo, len(params), len(params)-len(points))
	fmt.Fprintln(out, analysis.SweepToASCII(points, 70, 20))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tFINAL COUNT")
	for _, p := range points {
		final := 0
		if len(p.Counts) > 0 {
			final = p.Counts[len(p.Counts)-1]
		}
		fmt.Fprintf(w, "%.4g\t%d\n", p.Param, final)
	}
	return w.Flush()
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.FromConfig(cfg))
	if err := exp.Setup(nil); err != nil {
		return err
	}
	eng := exp.Engine()

	res := analysis.Divergence(eng.Bodies(), eng.G(), eng.Integrator(), bodyID, cfg.Dt, cfg.Ticks, perturb)

	logs := make([]float64, 0, len(res.Separations))
	for _, s := range res.Separations {
		if s > 0 && !math.IsInf(s, 0) {
			logs = append(logs, math.Log10(s))
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "divergence of %s after moving body %d by %g\n\n", cfg.Scenario, bodyID, perturb)
	if len(logs) > 1 {
		graph := asciigraph.Plot(logs,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("log10 separation"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	if n := len(res.Separations); n > 0 {
		fmt.Fprintf(out, "final separation: %.3e\n", res.Separations[n-1])
	}
	fmt.Fprintf(out, "growth exponent: %.4f per time unit\n", res.Exponent)
	return nil
}
