package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/sweep"
	"github.com/san-kum/orbitsim/internal/viz"
)

var (
	dataDir     string
	configPath  string
	preset      string
	gravity     string
	dt          float64
	duration    float64
	theme       string
	jsonOut     bool
	lyapunov    bool
	svgWidth    int
	svgHeight   int
	sweepParams []string
	trials      int
	perturb     float64
	seed        int64

	logger log.Logger
)

func main() {
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "2D solar system orbit simulator",
		Long:  "orbitsim integrates planetary motion under Newtonian gravity and draws it with pan, zoom and pause.",
		RunE:  runGUI,
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbitsim", "data directory for stored runs")
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&preset, "preset", "", "built-in preset (see 'orbitsim presets')")
	pf.StringVar(&gravity, "gravity", "", "gravity mode: pairwise or sun")
	pf.Float64Var(&dt, "dt", 0, "simulated seconds per step")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", viz.ThemeSpace.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "duration", 0, "simulated seconds")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON instead of a summary")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [body]",
		Short: "plot distance to the sun and the orbit of a body",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&lyapunov, "lyapunov", false, "also estimate the largest Lyapunov exponent per body")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the sampled positions of a run as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [output]",
		Short: "draw the orbits of a run as SVG",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 1000, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 1000, "image height")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the bodies of the selected configuration",
		Args:  cobra.NoArgs,
		RunE:  listBodies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a grid of headless simulations and compare energy drift",
		Long:  "sweep runs one headless simulation per combination of --param values, e.g. --param dt=3600:86400:4 --param velocity.Earth=28000,31000.",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=min:max:n or name=v1,v2 (repeatable)")
	sweepCmd.Flags().Float64Var(&duration, "duration", 0, "simulated seconds per run")
	_ = sweepCmd.MarkFlagRequired("param")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb initial velocities at random and count stable systems",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturbation", 0.05, "largest relative velocity change")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	monteCarloCmd.Flags().Float64Var(&duration, "duration", 0, "simulated seconds per trial")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportSVGCmd, bodiesCmd, presetsCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Log("level", "error", "message", err)
		os.Exit(1)
	}
}

// loadConfig resolves --config, --preset and the override flags into one
// validated config. It also returns the name runs are stored under.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		name = "custom"
		err  error
	)
	switch {
	case configPath != "":
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		name = filepath.Base(configPath)
		name = name[:len(name)-len(filepath.Ext(name))]
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	default:
		cfg = config.DefaultConfig()
		name = "solar"
	}

	flags := cmd.Flags()
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func newLoop(cfg *config.Config, width, height int, baseScale float64) (*sim.Loop, error) {
	sys, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	loop := sim.NewLoop(sys, camera.New(width, height, baseScale), cfg.Dt)
	loop.ZoomStep = cfg.ZoomStep
	return loop, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loop, err := newLoop(cfg, cfg.Width, cfg.Height, cfg.BaseScale)
	if err != nil {
		return err
	}
	gui.Run(loop, gui.Options{Width: cfg.Width, Height: cfg.Height, FPS: cfg.FPS}, logger)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The canvas is resized on the first WindowSizeMsg.
	const cols, rows = 80, 24
	loop, err := newLoop(cfg, cols*2, rows*4, cfg.BaseScale/4)
	if err != nil {
		return err
	}
	return viz.Run(loop, cols, rows, cfg.FPS, viz.GetTheme(theme), logger)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.NewRunner(sys)
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewStability(metrics.DefaultEscapeAU))
	var ranges []*metrics.DistanceRange
	for _, b := range sys.Bodies() {
		if b.IsSun {
			continue
		}
		r := metrics.NewDistanceRange(b.Name)
		ranges = append(ranges, r)
		runner.AddMetric(r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runLogger := log.With(logger, "subsys", "runner", "preset", name)
	runLogger.Log("level", "info", "message", "starting", "bodies", len(sys.Bodies()), "gravity", cfg.Gravity, "dt", cfg.Dt, "duration", cfg.Duration)
	start := time.Now()

	simCfg := cfg.SimConfig()
	result, err := runner.Run(ctx, simCfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Preset:   name,
		Sun:      sys.Sun().Name,
		Gravity:  cfg.Gravity,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	}, result)
	if err != nil {
		return err
	}
	runLogger.Log("level", "info", "message", "completed", "run", runID, "steps", result.StepsTaken, "elapsed", time.Since(start))

	if jsonOut {
		return storage.ExportJSON(os.Stdout, cfg.Gravity, cfg.Dt, cfg.Duration, result)
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)

	if len(ranges) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BODY\tPERIHELION\tAPHELION\tECCENTRICITY")
		for _, r := range ranges {
			fmt.Fprintf(w, "%s\t%.4f AU\t%.4f AU\t%.4f\n", r.Body(), r.Perihelion(), r.Aphelion(), r.Value())
		}
		return w.Flush()
	}
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRAVITY\tDAYS\tDT\tBODIES\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.0fs\t%d\t%.2e\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Gravity,
			run.Duration/orbit.Day,
			run.Dt,
			len(run.Bodies),
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

// distanceSeries returns the distance of body to sun, in AU, for every
// sample of result.
func distanceSeries(result *sim.Result, body, sun string) ([]float64, error) {
	track, err := result.Track(body)
	if err != nil {
		return nil, err
	}
	sunTrack, err := result.Track(sun)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(track))
	for i, p := range track {
		out[i] = math.Hypot(p.X-sunTrack[i].X, p.Y-sunTrack[i].Y)
	}
	return out, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	sun, bodies := meta.Planets()
	if len(args) > 1 {
		bodies = []string{args[1]}
	}
	if len(bodies) == 0 {
		return fmt.Errorf("run %s has no planets", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.States))

	const maxPlots = 4
	var tracks [][]orbit.Point
	for i, body := range bodies {
		track, err := result.Track(body)
		if err != nil {
			return err
		}
		tracks = append(tracks, track)
		if i >= maxPlots {
			continue
		}

		data, err := distanceSeries(result, body, sun)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s distance to %s (AU)", body, sun)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println("orbits:")
	fmt.Println(analysis.TracksToASCII(tracks, 60, 30))
	return nil
}

// runConfig rebuilds the configuration of a stored run. Runs made from a
// config file need --config again since only the file's name is stored.
func runConfig(meta *storage.RunMetadata) (*config.Config, error) {
	if configPath == "" {
		return config.ForRun(meta.Preset, meta.Gravity, meta.Dt, meta.Duration)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Gravity = meta.Gravity
	cfg.Dt = meta.Dt
	cfg.Duration = meta.Duration
	return cfg, cfg.Validate()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	if len(result.States) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("orbital analysis: %s\n", meta.ID)
	fmt.Printf("gravity: %s\n\n", meta.Gravity)

	sampleDt := result.Times[1] - result.Times[0]
	sun, bodies := meta.Planets()

	var sys *orbit.System
	if lyapunov {
		cfg, err := runConfig(meta)
		if err != nil {
			return err
		}
		if sys, err = cfg.Build(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "BODY\tFFT PERIOD\tCROSSING PERIOD"
	if lyapunov {
		header += "\tLYAPUNOV"
	}
	fmt.Fprintln(w, header)

	for _, body := range bodies {
		data, err := distanceSeries(result, body, sun)
		if err != nil {
			return err
		}
		fftPeriod := "-"
		if p, err := analysis.DominantPeriod(data, sampleDt); err == nil {
			fftPeriod = fmt.Sprintf("%.2f d", p/orbit.Day)
		}

		track, _ := result.Track(body)
		crossing := "-"
		if p, err := analysis.CrossingPeriod(track, result.Times); err == nil {
			crossing = fmt.Sprintf("%.2f d", p/orbit.Day)
		}

		row := fmt.Sprintf("%s\t%s\t%s", body, fftPeriod, crossing)
		if lyapunov {
			exp := "-"
			if l, err := analysis.LyapunovExponent(sys, body, 1e-9, meta.Dt, meta.Duration); err == nil {
				exp = fmt.Sprintf("%.3e /s", l)
			}
			row += "\t" + exp
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return err
	}
	f, err := os.Open(st.StatesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	colors := make(map[string]color.RGBA)
	for _, b := range config.SolarSystem() {
		colors[b.Name] = b.RGBA()
	}
	if configPath != "" || preset != "" {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		for _, b := range cfg.Bodies {
			colors[b.Name] = b.RGBA()
		}
	}

	out := runID + ".svg"
	if len(args) > 1 {
		out = args[1]
	}
	svg := export.TracksToSVG(export.ResultTracks(result, colors), svgWidth, svgHeight)
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Log("level", "info", "message", "wrote svg", "run", runID, "path", out)
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Printf("config: %s (gravity %s, dt %.0fs)\n\n", name, cfg.Gravity, cfg.Dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISTANCE\tMASS\tVELOCITY\tRADIUS\tCOLOR")
	for _, b := range cfg.Bodies {
		n := b.Name
		if b.Sun {
			n += " (sun)"
		}
		fmt.Fprintf(w, "%s\t%.3f AU\t%.4e kg\t%.1f m/s\t%.0f px\t%s\n",
			n, b.DistanceAU, b.MassKg, b.VelocityMPS, b.Radius, export.Hex(b.RGBA()))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	grid := &sweep.Grid{Base: cfg, Logger: logger}
	for _, arg := range sweepParams {
		p, err := sweep.ParseParam(arg)
		if err != nil {
			return err
		}
		grid.Params = append(grid.Params, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Log("level", "info", "message", "sweep starting", "runs", grid.Size())
	points, err := grid.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(grid.Params)+3)
	for _, p := range grid.Params {
		header = append(header, strings.ToUpper(p.Name))
	}
	header = append(header, "STEPS", "DRIFT", "STABILITY")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	drifts := make([]float64, 0, len(points))
	for _, pt := range points {
		row := make([]string, 0, len(header))
		for _, p := range grid.Params {
			row = append(row, fmt.Sprintf("%g", pt.Params[p.Name]))
		}
		if pt.Err != nil {
			row = append(row, "-", "error: "+pt.Err.Error(), "-")
		} else {
			row = append(row, fmt.Sprint(pt.Steps), fmt.Sprintf("%.3e", pt.EnergyDrift), fmt.Sprintf("%.3f", pt.Stability))
			drifts = append(drifts, math.Log10(pt.EnergyDrift+1e-300))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(drifts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(drifts,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("log10 energy drift per run"),
		))
	}
	if best, ok := sweep.Best(points); ok {
		fmt.Printf("\nlowest drift: %.3e at %v\n", best.EnergyDrift, best.Params)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sweep.RunMonteCarlo(ctx, sweep.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturb,
		Trials:       trials,
		Seed:         seed,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	stable, unstable := sweep.MonteCarloStats(results)
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("stable: %d\n", stable)
	fmt.Printf("unstable: %d\n", unstable)

	worst := 0.0
	for _, r := range results {
		if r.Err == nil {
			worst = math.Max(worst, r.EnergyDrift)
		}
	}
	fmt.Printf("max energy drift: %.3e\n", worst)
	return nil
}
