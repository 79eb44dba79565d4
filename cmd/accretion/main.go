package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/accretion/internal/automation"
	"github.com/san-kum/accretion/internal/config"
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/experiment"
	"github.com/san-kum/accretion/internal/storage"
	"github.com/san-kum/accretion/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	scenario   string
	integrator string
	seed       int64
	dt         float64
	ticks      int
	numBodies  int
	sample     int
	// live view
	theme   string
	frameMS int
	// stored run inspection
	bodyID  int
	outFile string
	// batch commands
	runs       int
	workers    int
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	perturb    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "accretion",
		Short:        "anchored n-body accretion simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".accretion", "data directory")
	addSimFlags(rootCmd)
	addLiveFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	addLiveFlags(liveCmd)

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a scenario and its parameters interactively",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}
	addSimFlags(menuCmd)
	addLiveFlags(menuCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios and integrators",
		RunE:  listScenarios,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot live count and anchor mass of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyID, "body", 1, "also plot the anchor distance of this body id (0 to skip)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital period of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyID, "body", 1, "body id")

	portraitCmd := &cobra.Command{
		Use:   "portrait [run_id]",
		Short: "orbit of one body relative to the anchor",
		Args:  cobra.ExactArgs(1),
		RunE:  portraitRun,
	}
	portraitCmd.Flags().IntVar(&bodyID, "body", 1, "body id")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the trajectories of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the engine over disk sizes",
		Args:  cobra.NoArgs,
		RunE:  benchEngine,
	}
	addSimFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same disk",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run consecutive seeds in parallel and summarize",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "live count against a launch parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "damping or deviation")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.01, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.08, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 15, "number of values")

	divergeCmd := &cobra.Command{
		Use:   "diverge",
		Short: "separation growth of a perturbed copy",
		Args:  cobra.NoArgs,
		RunE:  runDivergence,
	}
	addSimFlags(divergeCmd)
	divergeCmd.Flags().IntVar(&bodyID, "body", 1, "body id to perturb")
	divergeCmd.Flags().Float64Var(&perturb, "perturb", 1e-6, "initial displacement")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a yaml sequence of runs and store each",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(runCmd, liveCmd, menuCmd, listCmd, scenariosCmd, presetsCmd,
		plotCmd, analyzeCmd, portraitCmd, exportJSONCmd, exportSVGCmd,
		benchCmd, compareCmd, ensembleCmd, sweepCmd, divergeCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&scenario, "scenario", def.Scenario, "scenario")
	f.StringVar(&integrator, "integrator", def.Integrator, "integrator")
	f.Int64Var(&seed, "seed", def.Seed, "random seed")
	f.Float64Var(&dt, "dt", def.Dt, "timestep")
	f.IntVar(&ticks, "ticks", def.Ticks, "number of ticks")
	f.IntVar(&numBodies, "bodies", def.Orbit.OrbiterCount, "number of orbiters")
	f.IntVar(&sample, "sample", def.SampleEvery, "record a frame every n ticks (0 = first and last)")
}

func addLiveFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&theme, "theme", viz.Themes[0].Name, "color theme")
	f.IntVar(&frameMS, "frame-ms", config.DefaultFrameInterval, "milliseconds per frame")
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// later layers winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("scenario") {
		cfg.Scenario = scenario
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("bodies") {
		cfg.Orbit.OrbiterCount = numBodies
	}
	if flags.Changed("sample") {
		cfg.SampleEvery = sample
	}
	if flags.Changed("frame-ms") {
		cfg.FrameIntervalMS = frameMS
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func liveOptions(cfg *config.Config) viz.Options {
	opts := viz.DefaultOptions()
	opts.Title = "accretion · " + cfg.Scenario
	opts.FrameInterval = cfg.FrameInterval()
	opts.WorldWidth = cfg.World.Width
	opts.WorldHeight = cfg.World.Height
	if theme != "" {
		opts.Theme = theme
	}
	return opts
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	exp := experiment.New(experiment.FromConfig(cfg))
	if err := exp.Setup(experiment.DefaultMetrics(cfg.Orbit.G, cfg.World.Width)); err != nil {
		return err
	}

	fmt.Fprintf(out, "running %s: %d bodies, %d ticks, dt=%g, seed=%d\n",
		cfg.Scenario, exp.InitialBodies(), cfg.Ticks, cfg.Dt, cfg.Seed)

	ctx, stop := interruptContext()
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil {
		// keep what an interrupted run produced
		if !errors.Is(err, dynamo.ErrContextCanceled) || result == nil {
			return err
		}
		fmt.Fprintf(out, "interrupted after %d ticks\n", result.StepsTaken)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario:   cfg.Scenario,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Ticks:      result.StepsTaken,
		Integrator: cfg.Integrator,
		Bodies:     exp.InitialBodies(),
		Width:      cfg.World.Width,
		Height:     cfg.World.Height,
	}, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "survivors: %d of %d (%d merges)\n", result.Survivors, exp.InitialBodies(), len(result.Events))
	fmt.Fprintf(out, "mass: %.6g -> %.6g\n", result.InitialMass, result.FinalMass)
	fmt.Fprintf(out, "energy drift: %.3e\n", result.EnergyDrift)
	printMetrics(cmd, result.Metrics)
	return nil
}

func printMetrics(cmd *cobra.Command, metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.4g\n", name, metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.FromConfig(cfg))
	if err := exp.Setup(nil); err != nil {
		return err
	}
	return viz.Run(exp.Engine(), cfg.Dt, liveOptions(cfg))
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunMenu(cfg, liveOptions(cfg))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	list, err := st.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tINTEGRATOR\tBODIES\tSURVIVORS\tTICKS\tTIMESTAMP")
	for _, r := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.Scenario, r.Integrator, r.Bodies, r.Survivors, r.Ticks,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tDESCRIPTION")
	for _, s := range registry.ListScenarios() {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "INTEGRATORS")
	for _, name := range registry.ListIntegrators() {
		fmt.Fprintf(w, "%s\n", name)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if script.Name != "" {
		fmt.Fprintf(out, "script: %s\n", script.Name)
	}

	ctx, stop := interruptContext()
	defer stop()

	results, err := automation.RunScript(ctx, script, storage.New(dataDir), out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSEED\tBODIES\tSURVIVORS\tRUN ID")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", r.Step, r.Seed, r.Bodies, r.Result.Survivors, r.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
